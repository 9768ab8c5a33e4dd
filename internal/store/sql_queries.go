package store

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/health-mate/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	userColumns = `user_id, email, name, password_hash, created_at, updated_at`

	createUser = `INSERT INTO users (email, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING ` + userColumns + `;`

	upsertFederatedUser = `INSERT INTO users (email, name)
    VALUES ($1, $2)
    ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	setPasswordHash = `UPDATE users
    SET password_hash = $2, updated_at = NOW()
    WHERE user_id = $1 AND password_hash IS NULL;`
)

const (
	grantColumns = `grant_id, owner_id, viewer_id, permissions, created_at, updated_at`

	upsertGrant = `INSERT INTO access_grants (owner_id, viewer_id, permissions)
    VALUES ($1, $2, $3)
    ON CONFLICT (owner_id, viewer_id)
    DO UPDATE SET permissions = EXCLUDED.permissions, updated_at = NOW()
    RETURNING ` + grantColumns + `;`

	deleteGrant = `DELETE FROM access_grants
    WHERE owner_id = $1 AND viewer_id = $2;`

	findGrant = `SELECT ` + grantColumns + `
    FROM access_grants
    WHERE owner_id = $1 AND viewer_id = $2;`

	listGrantsByViewer = `SELECT u.user_id, u.email, u.name, g.permissions, g.created_at
    FROM access_grants g
    JOIN users u ON u.user_id = g.owner_id
    WHERE g.viewer_id = $1
    ORDER BY g.created_at DESC, g.grant_id DESC;`

	listGrantsByOwner = `SELECT u.user_id, u.email, u.name, g.permissions, g.created_at
    FROM access_grants g
    JOIN users u ON u.user_id = g.viewer_id
    WHERE g.owner_id = $1
    ORDER BY g.created_at DESC, g.grant_id DESC;`
)

const (
	vitalColumns = `vital_id, user_id, systolic, diastolic, heart_rate, blood_sugar,
    temperature, weight, oxygen_saturation, notes, recorded_at, created_at`

	listVitals = `SELECT ` + vitalColumns + `
    FROM vitals
    WHERE user_id = $1
    ORDER BY created_at DESC, vital_id DESC;`
)

const (
	fileColumns = `file_id, user_id, file_name, content_type, size_bytes, storage_key, url, extracted_text, uploaded_at`

	createFile = `INSERT INTO files (user_id, file_name, content_type, size_bytes, storage_key, url, extracted_text)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + fileColumns + `;`

	listFiles = `SELECT ` + fileColumns + `
    FROM files
    WHERE user_id = $1
    ORDER BY uploaded_at DESC, file_id DESC;`

	findFile = `SELECT ` + fileColumns + `
    FROM files
    WHERE user_id = $1 AND file_id = $2;`

	deleteFile = `DELETE FROM files
    WHERE user_id = $1 AND file_id = $2;`

	insightColumns = `insight_id, file_id, user_id, summary, created_at`

	createInsight = `INSERT INTO insights (file_id, user_id, summary)
    VALUES ($1, $2, $3)
    RETURNING ` + insightColumns + `;`

	listLatestInsights = `SELECT DISTINCT ON (file_id) ` + insightColumns + `
    FROM insights
    WHERE user_id = $1
    ORDER BY file_id, created_at DESC, insight_id DESC;`

	findLatestInsight = `SELECT ` + insightColumns + `
    FROM insights
    WHERE user_id = $1 AND file_id = $2
    ORDER BY created_at DESC, insight_id DESC
    LIMIT 1;`
)

const (
	chatColumns = `chat_id, user_id, title, file_id, messages, created_at, updated_at`

	createChat = `INSERT INTO chats (user_id, title, file_id, messages)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + chatColumns + `;`

	listChats = `SELECT ` + chatColumns + `
    FROM chats
    WHERE user_id = $1
    ORDER BY updated_at DESC, chat_id DESC;`

	findChat = `SELECT ` + chatColumns + `
    FROM chats
    WHERE user_id = $1 AND chat_id = $2;`

	updateChatMessages = `UPDATE chats
    SET messages = $3, updated_at = NOW()
    WHERE user_id = $1 AND chat_id = $2
    RETURNING ` + chatColumns + `;`

	renameChat = `UPDATE chats
    SET title = $3, updated_at = NOW()
    WHERE user_id = $1 AND chat_id = $2
    RETURNING ` + chatColumns + `;`

	deleteChat = `DELETE FROM chats
    WHERE user_id = $1 AND chat_id = $2;`
)

// likeEscaper escapes the ILIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildSearchUsersQuery builds a case-insensitive substring search on name
// or email that excludes excludeID and returns at most limit rows.
func buildSearchUsersQuery(query string, excludeID int64, limit uint64) (string, []any, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"

	sqlQuery, args, err := psql.
		Select("user_id", "email", "name").
		From("users").
		Where(sq.NotEq{"user_id": excludeID}).
		Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
		}).
		OrderBy("name", "email").
		Limit(limit).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}

// buildInsertVitalQuery builds the INSERT for a vital reading. Nil
// measurements are stored as NULL.
func buildInsertVitalQuery(vital models.Vital) (string, []any, error) {
	sqlQuery, args, err := psql.
		Insert("vitals").
		Columns(
			"user_id",
			"systolic",
			"diastolic",
			"heart_rate",
			"blood_sugar",
			"temperature",
			"weight",
			"oxygen_saturation",
			"notes",
			"recorded_at",
		).
		Values(
			vital.UserID,
			vital.Systolic,
			vital.Diastolic,
			vital.HeartRate,
			vital.BloodSugar,
			vital.Temperature,
			vital.Weight,
			vital.OxygenSaturation,
			vital.Notes,
			vital.RecordedAt,
		).
		Suffix("RETURNING " + vitalColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}
