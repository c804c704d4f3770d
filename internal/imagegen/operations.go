// Package imagegen talks to the external image-generation endpoint.
package imagegen

import (
	"fmt"
	"sort"
	"strings"
)

const (
	OpBrandLogo                   = "Brand Logo"
	OpBrandLogoRecreate           = "Brand Logo Recreate"
	OpProductPhotography          = "Product Photography"
	OpProductPhotographyWithModel = "Product Photography with model"
)

type Operation struct {
	Type          string
	Description   string
	RequiresPhoto bool
	// Fields are the form fields the endpoint understands, in display order.
	Fields []string
}

var Operations = []Operation{
	{
		Type:        OpBrandLogo,
		Description: "Generate a logo from a brand brief",
		Fields: []string{
			"brandName", "yourIndustry", "adPlatform", "campaignObjective",
			"targetAudience", "keyMessages", "brandGuidelines", "upscaleImage",
		},
	},
	{
		Type:          OpBrandLogoRecreate,
		Description:   "Recreate an existing logo",
		RequiresPhoto: true,
		Fields:        []string{"keyMessages", "upscaleImage"},
	},
	{
		Type:          OpProductPhotography,
		Description:   "Studio shot from a product photo",
		RequiresPhoto: true,
		Fields:        []string{"upscaleImage"},
	},
	{
		Type:          OpProductPhotographyWithModel,
		Description:   "Product photo featuring a model",
		RequiresPhoto: true,
		Fields:        []string{"upscaleImage"},
	},
}

func LookupOperation(opType string) (Operation, bool) {
	for _, op := range Operations {
		if op.Type == opType {
			return op, true
		}
	}
	return Operation{}, false
}

// Validate checks the operation is known and has its photo when one is
// required.
func (r Request) Validate() error {
	op, ok := LookupOperation(r.OperationType)
	if !ok {
		return fmt.Errorf("unknown operation type %q", r.OperationType)
	}
	if op.RequiresPhoto && (r.Photo == nil || len(r.Photo.Data) == 0) {
		return fmt.Errorf("operation %q requires a photo", r.OperationType)
	}
	return nil
}

// BuildPrompt renders the request as the prompt text stored with the
// generation: the operation type followed by its non-empty fields.
func BuildPrompt(r Request) string {
	var order []string
	if op, ok := LookupOperation(r.OperationType); ok {
		order = append(order, op.Fields...)
	}
	known := make(map[string]bool, len(order))
	for _, k := range order {
		known[k] = true
	}
	var extra []string
	for k := range r.Fields {
		if !known[k] && k != "operationType" {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	parts := []string{SanitizeForJSON(r.OperationType)}
	for _, k := range order {
		v := strings.TrimSpace(r.Fields[k])
		if v == "" || k == "upscaleImage" {
			continue
		}
		parts = append(parts, k+": "+SanitizeForJSON(v))
	}
	return strings.Join(parts, "; ")
}

var jsonReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ", "\r", "")

// SanitizeForJSON escapes backslashes and quotes, turns newlines into spaces
// and drops carriage returns.
func SanitizeForJSON(s string) string {
	return jsonReplacer.Replace(s)
}
