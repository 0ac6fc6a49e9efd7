package table

import "strings"

// DefaultColumns returns the column set a fresh table starts with.
func DefaultColumns() []Column {
	return []Column{
		{Key: "name", Label: "Name", Visible: true},
		{Key: "email", Label: "Email", Visible: true},
		{Key: "age", Label: "Age", Visible: true},
		{Key: "role", Label: "Role", Visible: true},
	}
}

type samplePerson struct {
	name       string
	age        float64
	role       string
	department string
	location   string
}

var samplePeople = []samplePerson{
	{"Alice Johnson", 29, "Developer", "Engineering", "New York"},
	{"Bob Smith", 34, "Designer", "Product", "London"},
	{"Charlie Williams", 41, "Manager", "Operations", "Berlin"},
	{"Diana Roberts", 25, "QA Engineer", "Quality Assurance", "Toronto"},
	{"Ethan Clark", 37, "Team Lead", "Engineering", "San Francisco"},
	{"Fiona Patel", 28, "Marketing Specialist", "Marketing", "Singapore"},
	{"George Lopez", 33, "Support Analyst", "Customer Success", "Sydney"},
	{"Hannah Green", 30, "HR Executive", "Human Resources", "Chicago"},
	{"Ian Wright", 39, "Project Manager", "Engineering", "New York"},
	{"Julia Adams", 27, "UI/UX Designer", "Product", "Paris"},
	{"Kevin Brown", 31, "Business Analyst", "Finance", "Dubai"},
	{"Laura Chen", 26, "Data Scientist", "Analytics", "Bangalore"},
	{"Michael Evans", 42, "Director", "Management", "San Francisco"},
	{"Nina Gupta", 29, "Researcher", "R&D", "Delhi"},
	{"Oliver White", 35, "Sales Executive", "Sales", "London"},
	{"Samuel Parker", 36, "Data Engineer", "Analytics", "Berlin"},
	{"Tina Wilson", 40, "HR Manager", "Human Resources", "Chicago"},
}

// SampleRows returns the demo dataset. Rows carry department and location
// fields that no default column shows.
func SampleRows() []Row {
	rows := make([]Row, 0, len(samplePeople))
	for _, p := range samplePeople {
		rows = append(rows, NewRow("", FieldsOf(
			F("name", Str(p.name)),
			F("email", Str(sampleEmail(p.name))),
			F("age", Num(p.age)),
			F("role", Str(p.role)),
			F("department", Str(p.department)),
			F("location", Str(p.location)),
		)))
	}
	return rows
}

func sampleEmail(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.org"
}
