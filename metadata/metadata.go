// Package metadata renders the default off-chain metadata document for a
// token: a JSON object with name, image, external url, and attributes.
// Tokens with a custom renderer override are served by that renderer
// instead; this package is the fallback authority.
package metadata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/provable-games/gametoken/token"
)

//go:embed schema.json
var schemaJSON string

// Options carries the collection-level identity baked into every document.
type Options struct {
	CollectionName string
	Symbol         string
	BaseURI        string
}

// Attribute is one display trait.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// Document is the rendered metadata object.
type Document struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	ExternalURL string      `json:"external_url,omitempty"`
	Attributes  []Attribute `json:"attributes"`
}

// TokenURI returns the canonical metadata URI for a token.
func TokenURI(baseURI string, tokenID uint64) string {
	return fmt.Sprintf("%s%d", baseURI, tokenID)
}

// Render produces the metadata document for a record. now is the time the
// playability attribute is derived at.
func Render(r *token.Record, now uint64, opts Options) ([]byte, error) {
	name := fmt.Sprintf("%s #%d", opts.CollectionName, r.TokenID)
	if r.PlayerName != "" {
		name = fmt.Sprintf("%s #%d - %s", opts.CollectionName, r.TokenID, r.PlayerName)
	}

	doc := Document{
		Name:        name,
		Description: fmt.Sprintf("Game session token %d (%s)", r.TokenID, opts.Symbol),
		Image:       fmt.Sprintf("%s%d/image", opts.BaseURI, r.TokenID),
		ExternalURL: r.ClientURL,
		Attributes: []Attribute{
			{TraitType: "Game ID", Value: r.GameID},
			{TraitType: "Minter ID", Value: r.MinterID},
			{TraitType: "Playable", Value: r.Lifecycle.PlayableAt(now)},
			{TraitType: "State", Value: r.Lifecycle.StateAt(now).String()},
			{TraitType: "Score", Value: r.Score},
			{TraitType: "Game Over", Value: r.GameOver},
			{TraitType: "Soulbound", Value: r.Soulbound},
			{TraitType: "Objectives", Value: len(r.ObjectiveIDs)},
			{TraitType: "Objectives Completed", Value: len(r.CompletedObjectives)},
			{TraitType: "All Objectives Completed", Value: r.CompletedAllObjectives},
		},
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Schema compiles the embedded metadata schema.
func Schema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("metadata.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("metadata: add schema resource: %w", err)
	}
	return c.Compile("metadata.schema.json")
}

// Validate checks a rendered document against the embedded schema.
func Validate(doc []byte) error {
	s, err := Schema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("metadata: parse document: %w", err)
	}
	return s.Validate(v)
}
