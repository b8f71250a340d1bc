package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// convertSurrealID converts a SurrealDB record ID to its string form "table:id"
func convertSurrealID(id interface{}) string {
	if str, ok := id.(string); ok {
		return str
	}
	if rid, ok := id.(models.RecordID); ok {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}
	if rid, ok := id.(*models.RecordID); ok && rid != nil {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}

	// Handle map format: {"tb": "school", "id": {"String": "dps"}} or similar
	if m, ok := id.(map[string]interface{}); ok {
		tb := ""
		idPart := ""
		if t, ok := m["tb"].(string); ok {
			tb = t
		} else if t, ok := m["Table"].(string); ok {
			tb = t
		}
		if idVal, ok := m["id"]; ok {
			idPart = extractIDValue(idVal)
		} else if idVal, ok := m["ID"]; ok {
			idPart = extractIDValue(idVal)
		}
		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		if idPart != "" {
			return idPart
		}
	}

	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the ID value which may be nested
func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		if s, ok := m["String"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// unwrapRow navigates the SurrealDB response structure down to a single
// record map. Returns false when the result holds no record.
func unwrapRow(result interface{}) (map[string]interface{}, bool) {
	if result == nil {
		return nil, false
	}

	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, false
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, false
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	return data, ok
}

// unwrapRows navigates the SurrealDB response structure down to a record
// list. Absent or empty results yield an empty slice.
func unwrapRows(result interface{}) []map[string]interface{} {
	if result == nil {
		return nil
	}

	rows, ok := result.([]interface{})
	if !ok {
		if single, ok := unwrapRow(result); ok {
			return []map[string]interface{}{single}
		}
		return nil
	}

	if len(rows) > 0 {
		if resp, ok := rows[0].(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				rows = resultData
			}
		}
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

// createdRecord holds fields SurrealDB assigns on CREATE
type createdRecord struct {
	ID        string
	CreatedOn time.Time
	UpdatedOn time.Time
}

// extractCreatedRecord pulls the assigned ID and timestamps from a CREATE result
func extractCreatedRecord(result interface{}) (*createdRecord, error) {
	data, ok := unwrapRow(result)
	if !ok {
		return nil, errors.New("no record returned")
	}

	record := &createdRecord{}
	if id, ok := data["id"]; ok {
		record.ID = convertSurrealID(id)
	}
	if t := getTime(data, "created_on"); t != nil {
		record.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		record.UpdatedOn = *t
	}
	return record, nil
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getStringPtr extracts an optional string value from a map
func getStringPtr(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// getInt extracts an int value from a map
func getInt(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	}
	return 0
}

// getFloat extracts a float value from a map
func getFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return 0
}

// getBool extracts a bool value from a map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

// getTime extracts a time value from a map
func getTime(m map[string]interface{}, key string) *time.Time {
	switch v := m[key].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return &t
		}
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return &t
		}
	case time.Time:
		return &v
	case models.CustomDateTime:
		t := v.Time
		return &t
	case *models.CustomDateTime:
		if v != nil {
			t := v.Time
			return &t
		}
	}
	return nil
}

// getTimeValue extracts a time value from a map, zero when absent
func getTimeValue(m map[string]interface{}, key string) time.Time {
	if t := getTime(m, key); t != nil {
		return *t
	}
	return time.Time{}
}

// getStringSlice extracts a string slice from a map
func getStringSlice(m map[string]interface{}, key string) []string {
	if v, ok := m[key].([]interface{}); ok {
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

// getRecordID extracts a record link field as its "table:id" string form
func getRecordID(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok && v != nil {
		return convertSurrealID(v)
	}
	return ""
}
