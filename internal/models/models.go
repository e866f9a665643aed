package models

// AllModels returns every model that should be auto-migrated at startup
func AllModels() []any {
	return []any{
		&Track{},
	}
}
