package parser

import (
	"math"
	"strconv"
	"strings"

	pxerrors "tabworks/pxtab/pkg/pcaxis/errors"
	"tabworks/pxtab/pkg/pcaxis/table"
)

// expandTable pairs the cartesian product of the dimension members with
// the whitespace-separated data tokens.
//
// Expansion is row-major: the last dimension varies fastest, matching the
// order PX writers emit cells in. The product size and the token count
// must agree exactly; with no dimensions at all the product is one and the
// data block must hold a single token.
func expandTable(dims table.DimensionSet, dataText string) ([]table.Row, error) {
	tokens := strings.Fields(dataText)

	product := dims.Product()
	if product != len(tokens) {
		return nil, pxerrors.NewCountMismatch(product, len(tokens))
	}

	rows := make([]table.Row, 0, product)
	odometer := make([]int, len(dims))
	for _, token := range tokens {
		labels := make([]string, len(dims))
		for d, member := range odometer {
			labels[d] = dims[d].Members[member]
		}
		rows = append(rows, table.Row{Labels: labels, Value: parseCell(token)})

		for d := len(odometer) - 1; d >= 0; d-- {
			odometer[d]++
			if odometer[d] < dims[d].Size() {
				break
			}
			odometer[d] = 0
		}
	}

	return rows, nil
}

// parseCell converts one data token to its numeric value. Tokens that are
// not numbers, such as the ".." confidentiality marker or "-", become NaN
// so a handful of withheld cells cannot reject the whole table.
func parseCell(token string) float64 {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
