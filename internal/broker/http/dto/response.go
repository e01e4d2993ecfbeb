package dto

// PublicTokenResponse contains a read token scoped to the shared public user.
type PublicTokenResponse struct {
	Token string `json:"token"`
}

// ResourceToken pairs a resource name with its serialized read token.
type ResourceToken struct {
	ResourceID string `json:"resource_id"`
	Token      string `json:"token"`
}

// BatchTokensResponse contains one token per requested resource, in request order.
type BatchTokensResponse struct {
	Tokens []ResourceToken `json:"tokens"`
}
