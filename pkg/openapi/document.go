// Package openapi embeds and reads the API description of the blog
// function.
package openapi

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

//go:embed openapi.yaml
var raw []byte

// Raw returns the embedded document bytes
func Raw() []byte {
	return raw
}

// Document is a parsed OpenAPI v3 description
type Document struct {
	model *libopenapi.DocumentModel[v3.Document]
}

// Parameter describes one operation parameter
type Parameter struct {
	Name        string
	In          string
	Required    bool
	Type        string
	Description string
}

// Response describes one operation response
type Response struct {
	Code        string
	Description string
	ContentType string
}

// Operation is a single method on a path
type Operation struct {
	Method      string
	Path        string
	Summary     string
	Description string
	Parameters  []Parameter
	Responses   []Response
}

// Load parses the embedded document
func Load() (*Document, error) {
	return Parse(raw)
}

// Parse parses an OpenAPI v3 document
func Parse(data []byte) (*Document, error) {
	document, err := libopenapi.NewDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}

	model, errs := document.BuildV3Model()
	if len(errs) > 0 {
		return nil, fmt.Errorf("building v3 model: %v", errs)
	}

	return &Document{model: model}, nil
}

// Title returns the document title and version
func (d *Document) Title() (string, string) {
	info := d.model.Model.Info
	if info == nil {
		return "", ""
	}
	return info.Title, info.Version
}

// Description returns the document description
func (d *Document) Description() string {
	if info := d.model.Model.Info; info != nil {
		return info.Description
	}
	return ""
}

// ServerURL returns the first server URL, if any
func (d *Document) ServerURL() string {
	if len(d.model.Model.Servers) == 0 {
		return ""
	}
	return d.model.Model.Servers[0].URL
}

// Operations lists every operation sorted by path then method
func (d *Document) Operations() []Operation {
	var ops []Operation

	if d.model.Model.Paths == nil || d.model.Model.Paths.PathItems == nil {
		return ops
	}

	for path, item := range d.model.Model.Paths.PathItems.FromOldest() {
		for method, op := range operations(item) {
			ops = append(ops, Operation{
				Method:      method,
				Path:        path,
				Summary:     op.Summary,
				Description: strings.TrimSpace(op.Description),
				Parameters:  parameters(item.Parameters, op.Parameters),
				Responses:   responses(op.Responses),
			})
		}
	}

	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return methodOrder(ops[i].Method) < methodOrder(ops[j].Method)
	})

	return ops
}

func operations(item *v3.PathItem) map[string]*v3.Operation {
	ops := make(map[string]*v3.Operation)

	if item.Get != nil {
		ops["GET"] = item.Get
	}
	if item.Post != nil {
		ops["POST"] = item.Post
	}
	if item.Put != nil {
		ops["PUT"] = item.Put
	}
	if item.Delete != nil {
		ops["DELETE"] = item.Delete
	}
	if item.Patch != nil {
		ops["PATCH"] = item.Patch
	}
	if item.Options != nil {
		ops["OPTIONS"] = item.Options
	}

	return ops
}

// parameters merges path-level and operation-level parameters, the
// operation winning on conflicts, in declaration order
func parameters(pathParams, opParams []*v3.Parameter) []Parameter {
	var result []Parameter
	index := make(map[string]int)

	for _, p := range append(append([]*v3.Parameter{}, pathParams...), opParams...) {
		if p == nil || p.Name == "" || p.In == "" {
			continue
		}

		param := Parameter{
			Name:        p.Name,
			In:          p.In,
			Required:    p.Required != nil && *p.Required,
			Description: p.Description,
		}
		if p.Schema != nil {
			if schema := p.Schema.Schema(); schema != nil && len(schema.Type) > 0 {
				param.Type = schema.Type[0]
			}
		}

		key := p.In + ":" + p.Name
		if i, ok := index[key]; ok {
			result[i] = param
			continue
		}
		index[key] = len(result)
		result = append(result, param)
	}

	return result
}

func responses(rs *v3.Responses) []Response {
	var result []Response
	if rs == nil {
		return result
	}

	if rs.Codes != nil {
		for code, r := range rs.Codes.FromOldest() {
			result = append(result, response(code, r))
		}
	}
	if rs.Default != nil {
		result = append(result, response("default", rs.Default))
	}

	return result
}

func response(code string, r *v3.Response) Response {
	resp := Response{Code: code, Description: r.Description}
	if r.Content != nil {
		for contentType := range r.Content.FromOldest() {
			resp.ContentType = contentType
			break
		}
	}
	return resp
}

func methodOrder(method string) int {
	order := map[string]int{
		"GET":     0,
		"POST":    1,
		"PUT":     2,
		"PATCH":   3,
		"DELETE":  4,
		"OPTIONS": 5,
	}
	if v, ok := order[method]; ok {
		return v
	}
	return 999
}
