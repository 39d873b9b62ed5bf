package domain

// Course is a catalog entry. The catalog is fixed at process start and
// never mutated at runtime.
type Course struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// Catalog is the static course catalog.
type Catalog struct {
	courses []Course
	byID    map[string]Course
}

// NewCatalog builds a catalog from a fixed course list.
func NewCatalog(courses []Course) *Catalog {
	byID := make(map[string]Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	return &Catalog{courses: courses, byID: byID}
}

// DefaultCourses returns the built-in course list.
func DefaultCourses() []Course {
	return []Course{
		{ID: "acc-en", Name: "محاسبة إنجليزي", EnglishName: "Accounting in English", Icon: "🔤", Color: "bg-[#0C1844]"},
		{ID: "mkt", Name: "مبادئ التسويق", EnglishName: "Principles of Marketing", Icon: "📢", Color: "bg-[#0C1844]"},
		{ID: "corp-acc", Name: "محاسبة شركات", EnglishName: "Corporate Accounting", Icon: "🏢", Color: "bg-[#0C1844]"},
		{ID: "op-res", Name: "بحوث العمليات", EnglishName: "Operations Research", Icon: "📊", Color: "bg-[#0C1844]"},
		{ID: "corp-law", Name: "قانون الشركات", EnglishName: "Corporate Law", Icon: "⚖️", Color: "bg-[#0C1844]"},
		{ID: "risk-ins", Name: "خطر وتأمين", EnglishName: "Risk and Insurance", Icon: "🛡️", Color: "bg-[#0C1844]"},
	}
}

// Get returns the course for an ID.
func (c *Catalog) Get(id string) (Course, bool) {
	course, ok := c.byID[id]
	return course, ok
}

// List returns all courses in catalog order.
func (c *Catalog) List() []Course {
	out := make([]Course, len(c.courses))
	copy(out, c.courses)
	return out
}
