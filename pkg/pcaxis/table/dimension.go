package table

// Role identifies whether a dimension classifies table rows or columns.
type Role string

const (
	// RoleStub marks a row-classifying dimension (declared under STUB).
	RoleStub Role = "stub"
	// RoleHeading marks a column-classifying dimension (declared under HEADING).
	RoleHeading Role = "heading"
)

// Dimension is a named classification axis of a PX table. Members keeps the
// declaration order of the corresponding VALUES(name) attribute, which is
// the order the data block is laid out in.
type Dimension struct {
	Name    string   `json:"name"`
	Role    Role     `json:"role"`
	Members []string `json:"members"`
}

// Size returns the number of members.
func (d Dimension) Size() int {
	return len(d.Members)
}

// DimensionSet is the ordered list of a document's dimensions: STUB
// dimensions first, HEADING dimensions second, each group in its declared
// order. This order defines the label order of every Row and the nesting
// order of the cartesian expansion.
type DimensionSet []Dimension

// Names returns the dimension names in set order.
func (ds DimensionSet) Names() []string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.Name
	}
	return names
}

// Product returns the size of the cartesian product of all member lists.
// The empty set yields 1 (the empty product), matching a dimensionless
// document whose data block holds exactly one observation.
func (ds DimensionSet) Product() int {
	product := 1
	for _, d := range ds {
		product *= len(d.Members)
	}
	return product
}

// LabelsAt returns the member labels addressing flat row index i of the
// row-major expansion, one label per dimension in set order. Index 0 is
// the first row; the last dimension varies fastest. Returns nil when i
// is out of range or any dimension is empty.
func (ds DimensionSet) LabelsAt(i int) []string {
	if i < 0 || i >= ds.Product() {
		return nil
	}
	labels := make([]string, len(ds))
	for d := len(ds) - 1; d >= 0; d-- {
		size := ds[d].Size()
		labels[d] = ds[d].Members[i%size]
		i /= size
	}
	return labels
}

// Stubs returns only the row-classifying dimensions, in order.
func (ds DimensionSet) Stubs() []Dimension {
	return ds.byRole(RoleStub)
}

// Headings returns only the column-classifying dimensions, in order.
func (ds DimensionSet) Headings() []Dimension {
	return ds.byRole(RoleHeading)
}

func (ds DimensionSet) byRole(role Role) []Dimension {
	var out []Dimension
	for _, d := range ds {
		if d.Role == role {
			out = append(out, d)
		}
	}
	return out
}
