package resource

import (
	"strings"

	"github.com/elnormous/contenttype"

	restshape "github.com/restshape/restshape"
	"github.com/restshape/restshape/dsl"
)

// JSONPatchContentType is the media type RFC 6902 assigns to patch documents.
const JSONPatchContentType = "application/json-patch+json"

var (
	patchMediaType = contenttype.NewMediaType(JSONPatchContentType)
	jsonMediaType  = contenttype.NewMediaType("application/json")
)

// RequestSchemaForContentType picks the request schema matching a request's
// Content-Type: JSON Patch documents get the statically wired patch schema,
// JSON payloads (including +json suffixed types) get PayloadRequestSchema
// with the body left to binding. An absent Content-Type defaults to the
// payload schema.
func RequestSchemaForContentType(ct string) (*dsl.ObjectSchema, error) {
	if ct == "" {
		return PayloadRequestSchema(), nil
	}
	mt, err := contenttype.ParseMediaType(ct)
	if err != nil {
		return nil, restshape.Issues{{
			Path:    "/header/Content-Type",
			Code:    restshape.CodeInvalidFormat,
			Message: "Invalid Content-Type header",
			Cause:   err,
		}}
	}
	switch {
	case mt.Matches(patchMediaType):
		return JSONPatchRequestSchema(), nil
	case mt.Matches(jsonMediaType), strings.HasSuffix(mt.Subtype, "+json"):
		return PayloadRequestSchema(), nil
	}
	return nil, restshape.Issues{{
		Path:    "/header/Content-Type",
		Code:    restshape.CodeInvalidEnum,
		Message: "Unsupported Content-Type " + ct,
	}}
}
