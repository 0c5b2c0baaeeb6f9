package resolver

import (
	"slices"
	"strings"

	"github.com/erraggy/oasvet/model"
)

// ExternalURIs lists, sorted, the absolute URIs of documents referenced from
// doc that are not registered yet. Reference nodes, discriminator mapping
// targets, and link operationRefs are all considered.
func (r *Resolver) ExternalURIs(doc *model.Document) []string {
	self := stripFragment(documentOf(doc).URI())
	seen := make(map[string]bool)
	var out []string

	add := func(pointer string) {
		docPart, _, err := splitPointer(pointer)
		if err != nil || docPart == "" {
			return
		}
		abs, err := resolveURI(doc.URI(), docPart)
		if err != nil || abs == self || seen[abs] {
			return
		}
		seen[abs] = true
		if _, ok := r.docs[abs]; !ok {
			out = append(out, abs)
		}
	}

	for _, id := range doc.References() {
		add(doc.Reference(id).Pointer)
	}
	for _, id := range doc.NodesOf(model.KindDiscriminator) {
		for _, m := range doc.Discriminator(id).Mapping {
			if strings.ContainsAny(m.Target, "/#") {
				add(m.Target)
			}
		}
	}
	for _, id := range doc.NodesOf(model.KindLink) {
		if link := doc.Link(id); link.HasOperationRef {
			add(link.OperationRef)
		}
	}

	slices.Sort(out)
	return out
}
