package workvalues

import "github.com/sells-group/workvalues-cli/internal/column"

// SOCColumn is the canonical name of the join key column.
const SOCColumn = "SOC Code"

// ValueNames lists the six O*NET work values in output order.
var ValueNames = []string{
	"Achievement",
	"Independence",
	"Recognition",
	"Relationships",
	"Support",
	"Working Conditions",
}

// valueAliases holds the accepted header or element-name tokens per value.
var valueAliases = map[string][]string{
	"Achievement":        {"achievement"},
	"Independence":       {"independence"},
	"Recognition":        {"recognition"},
	"Relationships":      {"relationship", "relationships"},
	"Support":            {"support"},
	"Working Conditions": {"workingconditions", "workconditions", "workingcondition", "workcondition"},
}

// socAliases are the header names a reference file may use for its SOC column.
var socAliases = []string{
	"SOC Code", "SOC", "Code", "SOC_Code", "Occupation Code",
	"O*NET-SOC Code", "O*NET-SOC Codes", "ONET SOC Code", "ONET SOC Codes",
}

// elementValues maps a canonical element name to its work value.
var elementValues = func() map[string]string {
	m := make(map[string]string)
	for _, v := range ValueNames {
		for _, a := range valueAliases[v] {
			m[column.Canon(a)] = v
		}
		m[column.Canon(v)] = v
	}
	return m
}()

// ValueFor maps an element name such as "Working Conditions" to its work
// value. ok is false for element names outside the six.
func ValueFor(element string) (string, bool) {
	v, ok := elementValues[column.Canon(element)]
	return v, ok
}
