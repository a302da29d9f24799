package db

import "fmt"

const messageColumns = "id, sender_id, content, chat_id, group_id, image_url, audio_url, audio_duration, created_at"

const groupColumns = "id, name, created_by, created_at"

// queries - тексты запросов с подставленной схемой.
// Схема приходит только из конфигурации и проверена в NewStore,
// все значения из запроса передаются параметрами $n.
type queries struct {
	messagesByChat  string
	messagesByGroup string
	groupsByUser    string
	insertMessage   string
	insertGroup     string
	insertMember    string
	updateContent   string
	replaceContent  string
}

func newQueries(schema string) queries {
	return queries{
		messagesByChat: fmt.Sprintf(
			`SELECT %s FROM %s.messages WHERE chat_id = $1 ORDER BY created_at ASC, id ASC`,
			messageColumns, schema),
		messagesByGroup: fmt.Sprintf(
			`SELECT %s FROM %s.messages WHERE group_id = $1 ORDER BY created_at ASC, id ASC`,
			messageColumns, schema),
		groupsByUser: fmt.Sprintf(`
            SELECT g.id, g.name, g.created_by, g.created_at
            FROM %[1]s.groups g
            JOIN %[1]s.group_members gm ON g.id = gm.group_id
            WHERE gm.user_id = $1
            ORDER BY g.created_at DESC, g.id DESC`, schema),
		insertMessage: fmt.Sprintf(`
            INSERT INTO %s.messages (sender_id, content, chat_id, group_id, image_url, audio_url, audio_duration)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            RETURNING %s`, schema, messageColumns),
		insertGroup: fmt.Sprintf(`
            INSERT INTO %s.groups (name, created_by)
            VALUES ($1, $2)
            RETURNING %s`, schema, groupColumns),
		insertMember: fmt.Sprintf(
			`INSERT INTO %s.group_members (group_id, user_id) VALUES ($1, $2)`, schema),
		updateContent: fmt.Sprintf(`
            UPDATE %s.messages SET content = $1 WHERE id = $2
            RETURNING %s`, schema, messageColumns),
		replaceContent: fmt.Sprintf(
			`UPDATE %s.messages SET content = $1 WHERE id = $2`, schema),
	}
}
