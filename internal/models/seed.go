package models

// DefaultSections is the section list used when nothing has been stored yet.
func DefaultSections() []Section {
	return []Section{
		{ID: "sec1", Name: "Grade 5 - Section A"},
		{ID: "sec2", Name: "Grade 5 - Section B"},
		{ID: "sec3", Name: "Grade 6 - Section A"},
	}
}

// DefaultStudents is the seed roster matching DefaultSections.
func DefaultStudents() []Student {
	return []Student{
		{ID: "s1", Name: "Liam Smith", SectionID: "sec1"},
		{ID: "s2", Name: "Olivia Johnson", SectionID: "sec1"},
		{ID: "s3", Name: "Noah Williams", SectionID: "sec1"},
		{ID: "s4", Name: "Emma Brown", SectionID: "sec1"},
		{ID: "s5", Name: "Oliver Jones", SectionID: "sec1"},
		{ID: "s6", Name: "Ava Garcia", SectionID: "sec1"},
		{ID: "s7", Name: "Elijah Miller", SectionID: "sec1"},
		{ID: "s8", Name: "Charlotte Davis", SectionID: "sec1"},
		{ID: "s9", Name: "William Rodriguez", SectionID: "sec1"},
		{ID: "s10", Name: "Sophia Martinez", SectionID: "sec1"},

		{ID: "s11", Name: "James Hernandez", SectionID: "sec2"},
		{ID: "s12", Name: "Isabella Lopez", SectionID: "sec2"},
		{ID: "s13", Name: "Benjamin Gonzalez", SectionID: "sec2"},
		{ID: "s14", Name: "Mia Wilson", SectionID: "sec2"},
		{ID: "s15", Name: "Lucas Anderson", SectionID: "sec2"},
		{ID: "s16", Name: "Harper Thomas", SectionID: "sec2"},
		{ID: "s17", Name: "Henry Taylor", SectionID: "sec2"},
		{ID: "s18", Name: "Evelyn Moore", SectionID: "sec2"},

		{ID: "s19", Name: "Alexander Jackson", SectionID: "sec3"},
		{ID: "s20", Name: "Abigail Martin", SectionID: "sec3"},
		{ID: "s21", Name: "Michael Lee", SectionID: "sec3"},
		{ID: "s22", Name: "Emily Perez", SectionID: "sec3"},
		{ID: "s23", Name: "Daniel Thompson", SectionID: "sec3"},
		{ID: "s24", Name: "Ella White", SectionID: "sec3"},
		{ID: "s25", Name: "Matthew Harris", SectionID: "sec3"},
		{ID: "s26", Name: "Scarlett Clark", SectionID: "sec3"},
		{ID: "s27", Name: "Joseph Lewis", SectionID: "sec3"},
		{ID: "s28", Name: "Victoria Robinson", SectionID: "sec3"},
	}
}

// DefaultModules is the evaluation module list used when nothing has been stored yet.
func DefaultModules() []EvaluationModule {
	return []EvaluationModule{
		{ID: "mod1", Name: "Participación", Type: ModuleTypeSelect, Options: []string{"Excelente", "Bueno", "Regular", "Deficiente"}},
		{ID: "mod2", Name: "Comportamiento", Type: ModuleTypeSelect, Options: []string{"Ejemplar", "Satisfactorio", "Necesita Mejorar"}},
		{ID: "mod3", Name: "Notas", Type: ModuleTypeText},
	}
}
