package entities

import "fmt"

// DefaultCourses returns the built-in course plan used when no saved data
// exists. Item ids are deterministic so a reseed produces the same plan.
func DefaultCourses() []Course {
	return []Course{
		{
			ID:       "1",
			Name:     "ESC101H1",
			ExamDate: "Dec 5",
			Color:    "#E57373",
			NotesURL: "https://q.utoronto.ca/courses/411081/modules",
			ExamsURL: "https://courses.skule.ca/course/ESC101H1#63",
			Tasks: []Task{
				{ID: "c1-1", Text: "Review lecture summaries"},
				{ID: "c1-2", Text: "Practice old exam problems"},
			},
			Notes:         numberedNotes("c1", "Lecture", 35),
			PracticeExams: numberedExams("c1", 3),
		},
		{
			ID:       "2",
			Name:     "PHY180H1",
			ExamDate: "Dec 8",
			Color:    "#64B5F6",
			NotesURL: "https://q.utoronto.ca/courses/411727/modules",
			ExamsURL: "https://courses.skule.ca/api/exam/exams/bulk/20229/PHY180F_2022_FOUNDATIONS%20OF%20PHYSICS_E.pdf",
			Tasks: []Task{
				{ID: "c2-1", Text: "Review key formulas"},
				{ID: "c2-2", Text: "Work through example problems"},
			},
			Notes:         numberedNotes("c2", "Class", 40),
			PracticeExams: numberedExams("c2", 2),
		},
		{
			ID:       "3",
			Name:     "ESC103H1",
			ExamDate: "Dec 10",
			Color:    "#FFD54F",
			NotesURL: "https://courses.skule.ca/course/ESC103H1#66",
			ExamsURL: "https://courses.skule.ca/course/ESC103H1#63",
			Tasks: []Task{
				{ID: "c3-1", Text: "Review vector operations"},
				{ID: "c3-2", Text: "Practice unit conversions"},
			},
			Notes:         numberedNotes("c3", "Unit", 25),
			PracticeExams: numberedExams("c3", 4),
		},
		{
			ID:       "4",
			Name:     "ESC194H1",
			ExamDate: "Dec 12",
			Color:    "#BA68C8",
			ExamsURL: "https://courses.skule.ca/course/MAT194H1#63",
			Tasks: []Task{
				{ID: "c4-1", Text: "Finish remaining problem sets"},
				{ID: "c4-2", Text: "Review derivatives and integrals"},
			},
			Notes: []Note{
				{ID: "c4-n1", Title: "Stewart 1.4 + Appendix D (Trig)"},
				{ID: "c4-n2", Title: "Barbeau-Stangeby Supplement 1, 2.1-2.7"},
				{ID: "c4-n3", Title: "Stewart 1.5 + Problems 1.1-1.3"},
				{ID: "c4-n4", Title: "Stewart 1.6-1.8 + Supplement 2.8, 3.1-3.4, 4.1"},
				{ID: "c4-n5", Title: "Stewart 2.1-2.7 (Limits)"},
				{ID: "c4-n6", Title: "Stewart 2.8-2.9 + Supplement 4.2-4.3"},
				{ID: "c4-n7", Title: "Stewart 3.1-3.4 (Derivatives)"},
				{ID: "c4-n8", Title: "Stewart 3.5, 3.7, 3.9, 4.1 + Appendix E"},
				{ID: "c4-n9", Title: "Stewart 4.2-4.3 (Applications)"},
				{ID: "c4-n10", Title: "Stewart 4.4-4.5, 5.1-5.2 (Optimization & Integrals)"},
				{ID: "c4-n11", Title: "Stewart 5.3, 5.5, 6.1, 6.2* (Integration)"},
				{ID: "c4-n12", Title: "Stewart 6.3*-6.4* (Applications of Integration)"},
				{ID: "c4-n13", Title: "Stewart 6.6 (Inverse Functions)"},
				{ID: "c4-n14", Title: "Stewart 6.8, 9.1, 9.3, 6.5, 9.4 (Differential Equations)"},
				{ID: "c4-n15", Title: "Stewart 9.5, 17.1 + Complex Numbers"},
				{ID: "c4-n16", Title: "Stewart 17.2 (Vector Calculus)"},
			},
			PracticeExams: numberedExams("c4", 10),
		},
		{
			ID:       "5",
			Name:     "ESC180H1",
			ExamDate: "Dec 16",
			Color:    "#4DB6AC",
			ExamsURL: "https://www.cs.toronto.edu/~guerzhoy/180/",
			Tasks: []Task{
				{ID: "c5-1", Text: "Review Python syntax and concepts"},
				{ID: "c5-2", Text: "Practice coding problems"},
				{ID: "c5-3", Text: "Review data structures"},
			},
			PracticeExams: numberedExams("c5", 6),
		},
		{
			ID:       "6",
			Name:     "CIV102H1",
			ExamDate: "Dec 19",
			Color:    "#FF8A65",
			NotesURL: "https://courses.skule.ca/course/CIV102H1#66",
			ExamsURL: "https://courses.skule.ca/course/CIV102H1#63",
			Tasks: []Task{
				{ID: "c6-1", Text: "Review structural analysis methods"},
				{ID: "c6-2", Text: "Practice bridge design calculations"},
			},
			Notes:         numberedNotes("c6", "Lecture", 35),
			PracticeExams: numberedExams("c6", 10),
		},
	}
}

func numberedNotes(coursePrefix, label string, n int) []Note {
	notes := make([]Note, n)
	for i := range notes {
		notes[i] = Note{
			ID:    fmt.Sprintf("%s-n%d", coursePrefix, i+1),
			Title: fmt.Sprintf("%s %d", label, i+1),
		}
	}
	return notes
}

func numberedExams(coursePrefix string, n int) []PracticeExam {
	exams := make([]PracticeExam, n)
	for i := range exams {
		exams[i] = PracticeExam{
			ID:    fmt.Sprintf("%s-e%d", coursePrefix, i+1),
			Title: fmt.Sprintf("Practice Exam %d", i+1),
		}
	}
	return exams
}
