package text

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Encoding directions.
const (
	Encode = "encode"
	Decode = "decode"
)

// Base64 encodes or decodes s. Decoding accepts input with or without
// padding and ignores embedded whitespace.
func Base64(s, direction string, urlSafe bool) (string, error) {
	enc := base64.StdEncoding
	if urlSafe {
		enc = base64.URLEncoding
	}
	if direction == Encode {
		return enc.EncodeToString([]byte(s)), nil
	}

	compact := strings.Join(strings.Fields(s), "")
	out, err := enc.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(compact, "="))
	if err != nil {
		return "", types.ParseError("Invalid Base64", err)
	}
	if !utf8.Valid(out) {
		return "", types.ParseError("Decoded data is not text", nil)
	}
	return string(out), nil
}

// Base64Encoder returns the base64-encoder widget.
func Base64Encoder() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		src := in.Raw("text")
		if src == "" {
			return types.Result{}, types.InputError("text is required")
		}
		dir, err := widgets.OneOf(in, "mode", Encode, Encode, Decode)
		if err != nil {
			return types.Result{}, err
		}
		out, err := Base64(src, dir, in.Bool("url_safe"))
		if err != nil {
			return types.Result{}, err
		}
		return types.Result{Output: out, Status: "Valid"}, nil
	})
}

// URLEscape encodes or decodes s as a query component, or as a path
// segment when path is set.
func URLEscape(s, direction string, path bool) (string, error) {
	if direction == Encode {
		if path {
			return url.PathEscape(s), nil
		}
		return url.QueryEscape(s), nil
	}
	var (
		out string
		err error
	)
	if path {
		out, err = url.PathUnescape(s)
	} else {
		out, err = url.QueryUnescape(s)
	}
	if err != nil {
		return "", types.ParseError("Invalid URL encoding", err)
	}
	return out, nil
}

// URLEncoder returns the url-encoder widget.
func URLEncoder() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		src := in.Raw("text")
		if src == "" {
			return types.Result{}, types.InputError("text is required")
		}
		dir, err := widgets.OneOf(in, "mode", Encode, Encode, Decode)
		if err != nil {
			return types.Result{}, err
		}
		out, err := URLEscape(src, dir, in.Get("component") == "path")
		if err != nil {
			return types.Result{}, err
		}
		return types.Result{Output: out}, nil
	})
}
