package models

// SavedAlert is a named, reusable search definition. Disabled alerts are
// kept in storage but skipped by alert runs.
type SavedAlert struct {
	Name     string         `yaml:"name"`
	Criteria SearchCriteria `yaml:"criteria"`
	Enabled  bool           `yaml:"enabled"`
}
