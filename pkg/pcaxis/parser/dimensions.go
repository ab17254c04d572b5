package parser

import (
	pxerrors "tabworks/pxtab/pkg/pcaxis/errors"
	"tabworks/pxtab/pkg/pcaxis/table"
)

// extractDimensions resolves the table axes from decoded metadata.
//
// STUB names come first, then HEADING names, each keeping its declared
// order. Every name must have a matching VALUES(name) attribute; a name
// without one is unexpandable and aborts the parse. An absent STUB or
// HEADING key simply contributes no dimensions, so one-axis tables are
// fine.
func extractDimensions(meta *table.Metadata) (table.DimensionSet, error) {
	groups := []struct {
		key  string
		role table.Role
	}{
		{table.KeyStub, table.RoleStub},
		{table.KeyHeading, table.RoleHeading},
	}

	var dims table.DimensionSet
	for _, group := range groups {
		for _, name := range meta.Get(group.key) {
			valuesKey := table.ValuesKey(name)
			if !meta.Has(valuesKey) {
				return nil, pxerrors.NewMissingDimensionValues(name)
			}
			dims = append(dims, table.Dimension{
				Name:    name,
				Role:    group.role,
				Members: meta.Get(valuesKey),
			})
		}
	}
	return dims, nil
}
