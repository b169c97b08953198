package extract

import (
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

var commentExQuery = xpath.MustCompile("//*[local-name()='commentEx']")

// replySet returns the paragraph ids of comments that are replies to
// another comment, read from the commentsExtended payload. Replies never
// appear in top-level output. A nil payload yields an empty set: without
// the extended metadata no comment can be identified as a reply, and that
// is a degraded mode rather than an error.
func replySet(root *xmlquery.Node, schema Schema) map[string]struct{} {
	replies := make(map[string]struct{})
	if root == nil {
		return replies
	}
	for _, n := range xmlquery.QuerySelectorAll(root, commentExQuery) {
		paraID := attrValue(n, schema.ExtendedNS, "paraId")
		parentID := attrValue(n, schema.ExtendedNS, "paraIdParent")
		if paraID != "" && parentID != "" {
			replies[paraID] = struct{}{}
		}
	}
	return replies
}
