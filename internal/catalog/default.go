package catalog

import "github.com/rsarkar/bayestutor/internal/topicgraph"

// Default returns the built-in algebra catalog: nine topics across five
// levels, from basic expressions to calculus fundamentals. Used whenever
// no catalog file is supplied.
func Default() []topicgraph.Topic {
	return []topicgraph.Topic{
		{
			ID:         "algebra-intro",
			Name:       "Introduction to Algebra",
			Level:      0,
			Difficulty: 0.2,
			Content:    "Basic algebraic expressions and equations",
		},
		{
			ID:         "variables-expressions",
			Name:       "Variables and Expressions",
			Level:      0,
			Difficulty: 0.3,
			Content:    "Understanding variables and evaluating expressions",
		},
		{
			ID:            "linear-equations",
			Name:          "Linear Equations",
			Level:         1,
			Difficulty:    0.4,
			Prerequisites: []string{"algebra-intro"},
			Content:       "Solving linear equations with one variable",
		},
		{
			ID:            "basic-inequalities",
			Name:          "Basic Inequalities",
			Level:         1,
			Difficulty:    0.5,
			Prerequisites: []string{"variables-expressions"},
			Content:       "Understanding and solving basic inequalities",
		},
		{
			ID:            "quadratic-equations",
			Name:          "Quadratic Equations",
			Level:         2,
			Difficulty:    0.6,
			Prerequisites: []string{"linear-equations"},
			Content:       "Solving quadratic equations by factoring",
		},
		{
			ID:            "systems-of-equations",
			Name:          "Systems of Equations",
			Level:         2,
			Difficulty:    0.7,
			Prerequisites: []string{"linear-equations"},
			Content:       "Solving systems of linear equations",
		},
		{
			ID:            "polynomial-functions",
			Name:          "Polynomial Functions",
			Level:         3,
			Difficulty:    0.8,
			Prerequisites: []string{"quadratic-equations"},
			Content:       "Understanding and working with polynomial functions",
		},
		{
			ID:            "trigonometric-basics",
			Name:          "Trigonometric Basics",
			Level:         3,
			Difficulty:    0.9,
			Prerequisites: []string{"linear-equations", "quadratic-equations"},
			Content:       "Introduction to sine, cosine, tangent",
		},
		{
			ID:            "calculus-fundamentals",
			Name:          "Calculus Fundamentals",
			Level:         4,
			Difficulty:    0.95,
			Prerequisites: []string{"polynomial-functions", "trigonometric-basics"},
			Content:       "Introduction to derivatives and integrals",
		},
	}
}
