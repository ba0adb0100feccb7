// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/chorewheel/household"
)

// loadHousehold decodes a YAML snapshot such as:
//
//	id: flat-3b
//	name: Flat 3B
//	users:
//	  - id: ana
//	    preferences: {dishes: favor, trash: neutral}
//	chores:
//	  - id: dishes
//	    assignedTo: ana
func loadHousehold(path string) (household.Household, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return household.Household{}, fmt.Errorf("read household file: %w", err)
	}

	var h household.Household
	if err = yaml.Unmarshal(data, &h); err != nil {
		return household.Household{}, fmt.Errorf("parse household file: %w", err)
	}
	if err = h.Validate(); err != nil {
		return household.Household{}, err
	}

	return h, nil
}
