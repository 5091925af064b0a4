package surveyload

import (
	_ "embed"

	"gopkg.in/yaml.v2"
)

//go:embed mapping.yaml
var mappingYAML []byte

// ColumnRename maps a normalized source column to its destination column.
type ColumnRename struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// DefaultMapping returns the built-in survey column mapping in insert order.
func DefaultMapping() []ColumnRename {
	var m []ColumnRename
	if err := yaml.Unmarshal(mappingYAML, &m); err != nil {
		// The mapping is embedded and static.
		panic(err)
	}

	return m
}
