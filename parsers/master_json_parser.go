// Package parsers decodes the vendor file formats consumed by the sync
// pipeline.
package parsers

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"popis/model"
)

var validate = validator.New()

// ParseProductsInfo decodes and structurally validates one master data file.
// Presence of the two sections is checked by the caller, which tells empty
// catalogs and empty damage lists apart; here every present record must at
// least carry its key.
func ParseProductsInfo(data []byte) (*model.ProductsInfo, error) {
	var info model.ProductsInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse master data JSON: %w", err)
	}
	if err := validate.Struct(&info); err != nil {
		return nil, fmt.Errorf("master data failed validation: %w", err)
	}
	return &info, nil
}
