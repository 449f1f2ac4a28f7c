// SPDX-License-Identifier: Apache-2.0

package openapi

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/specmock/specmock/internal/config"
	"github.com/specmock/specmock/internal/logger"
)

// Document is the loaded OpenAPI document resolved into the mock server's
// route table.
type Document struct {
	// Title and Version come from the document's info block.
	Title   string
	Version string

	// BasePath is the configured prefix stripped from incoming request
	// paths before matching. Normalized to either "" or "/prefix" form.
	BasePath string

	// Operations is the flat route table, ordered by pattern then method.
	Operations []*Operation

	// Schemes maps scheme names from components.securitySchemes to their
	// checker-facing descriptions.
	Schemes map[string]Scheme
}

// Load reads and validates the OpenAPI 3 document named by cfg.Location
// (a file path or an http(s) URL) and resolves it into a [Document].
//
// Requirements that reference scheme names absent from
// components.securitySchemes are kept (the security checker treats them as
// unsatisfiable), but each unknown name is logged once here.
func Load(ctx context.Context, cfg config.Spec, log *logger.Logger) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true

	spec, err := loadSpec(loader, cfg.Location)
	if err != nil {
		log.Err(err).Str("location", cfg.Location).Msg("failed to load openapi document")
		return nil, fmt.Errorf("%w: %w", ErrLoadingDocument, err)
	}

	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		log.Err(err).Str("location", cfg.Location).Msg("openapi document failed validation")
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	doc := &Document{
		BasePath: normalizeBasePath(cfg.BasePath),
		Schemes:  collectSchemes(spec),
	}
	if spec.Info != nil {
		doc.Title = spec.Info.Title
		doc.Version = spec.Info.Version
	}

	doc.Operations = collectOperations(spec)
	sort.Slice(doc.Operations, func(i, j int) bool {
		if doc.Operations[i].Pattern != doc.Operations[j].Pattern {
			return doc.Operations[i].Pattern < doc.Operations[j].Pattern
		}
		return doc.Operations[i].Method < doc.Operations[j].Method
	})

	warnUnknownSchemes(doc, log)

	log.Info().
		Str("title", doc.Title).
		Str("version", doc.Version).
		Int("operations", len(doc.Operations)).
		Int("security_schemes", len(doc.Schemes)).
		Msg("openapi document loaded")

	return doc, nil
}

func loadSpec(loader *openapi3.Loader, location string) (*openapi3.T, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		u, err := url.Parse(location)
		if err != nil {
			return nil, err
		}
		return loader.LoadFromURI(u)
	}

	return loader.LoadFromFile(location)
}

func collectSchemes(spec *openapi3.T) map[string]Scheme {
	schemes := make(map[string]Scheme)
	if spec.Components == nil {
		return schemes
	}

	for name, ref := range spec.Components.SecuritySchemes {
		if ref == nil || ref.Value == nil {
			continue
		}
		schemes[name] = newScheme(name, ref.Value)
	}

	return schemes
}

func collectOperations(spec *openapi3.T) []*Operation {
	if spec.Paths == nil {
		return nil
	}

	docSecurity := toRequirements(spec.Security)

	ops := make([]*Operation, 0, spec.Paths.Len()*2)
	for pattern, pathItem := range spec.Paths.Map() {
		if pathItem == nil {
			continue
		}

		for method, op := range pathItem.Operations() {
			if op == nil {
				continue
			}

			security := docSecurity
			if op.Security != nil {
				// Operation-level security overrides the document
				// default; an explicit empty list disables auth.
				security = toRequirements(*op.Security)
			}

			ops = append(ops, &Operation{
				Method:      method,
				Pattern:     pattern,
				OperationID: op.OperationID,
				ItemParam:   itemParam(pattern),
				Security:    security,
			})
		}
	}

	return ops
}

func toRequirements(src openapi3.SecurityRequirements) []Requirement {
	reqs := make([]Requirement, 0, len(src))
	for _, alt := range src {
		req := make(Requirement, len(alt))
		for name, scopes := range alt {
			req[name] = scopes
		}
		reqs = append(reqs, req)
	}

	return reqs
}

func warnUnknownSchemes(doc *Document, log *logger.Logger) {
	seen := make(map[string]struct{})
	for _, op := range doc.Operations {
		for _, req := range op.Security {
			for name := range req {
				if _, ok := doc.Schemes[name]; ok {
					continue
				}
				if _, logged := seen[name]; logged {
					continue
				}
				seen[name] = struct{}{}
				log.Warn().
					Str("scheme", name).
					Msg("security requirement references an undeclared scheme; it can never be satisfied")
			}
		}
	}
}

func normalizeBasePath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return ""
	}

	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}

	return strings.TrimRight(basePath, "/")
}
