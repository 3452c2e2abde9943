// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog holds the questionnaire text: step titles, answer choices and
scale labels. It is loaded from the embedded catalog.yaml.

	c := catalog.Default()
	for _, step := range c.Steps {
		fmt.Println(step.Title)
	}
*/
package catalog
