// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/codemillmatt/cosmos-db-permissions/internal/validation"
)

// maxBatchResources bounds a single batch request. Each miss costs up to
// three document store round trips, so very large batches belong in
// multiple requests.
const maxBatchResources = 50

// BatchTokensRequest contains the parameters for issuing resource tokens in batch.
type BatchTokensRequest struct {
	UserID    string   `json:"user_id"`
	Resources []string `json:"resources"`
}

// Validate checks if the batch tokens request is valid.
func (r *BatchTokensRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.UserID,
			validation.Length(1, 255),
		),
		validation.Field(&r.Resources,
			validation.Required,
			validation.Length(1, maxBatchResources),
			validation.By(validateNoDuplicateResources),
			validation.Each(
				validation.Required,
				customValidation.NotBlank,
				customValidation.ResourceName,
				validation.Length(1, 255),
			),
		),
	)
}

// validateNoDuplicateResources rejects batches that name the same resource twice.
// Duplicates would race against each other during provisioning for no benefit.
func validateNoDuplicateResources(value interface{}) error {
	resources, ok := value.([]string)
	if !ok {
		return validation.NewError("validation_resources_type", "must be a list of resource names")
	}

	seen := make(map[string]struct{}, len(resources))
	for _, resource := range resources {
		if _, exists := seen[resource]; exists {
			return validation.NewError(
				"validation_resources_duplicate",
				"must not contain duplicate resource names",
			)
		}
		seen[resource] = struct{}{}
	}

	return nil
}
