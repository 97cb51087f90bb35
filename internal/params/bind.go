package params

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/link2cory/echo-hello-world/internal/errs"
	"github.com/link2cory/echo-hello-world/internal/schema"
	"github.com/link2cory/echo-hello-world/internal/validation"
)

// BindOptions tunes request parsing.
type BindOptions struct {
	// MemoryThreshold is the number of bytes of a multipart body kept in memory;
	// larger parts spill to temporary files.
	MemoryThreshold int64
}

// binder accumulates the outcome of one Bind call.
type binder struct {
	sig    *Signature
	c      echo.Context
	values *Values
	errors []errs.FieldError
}

// Bind extracts, coerces and validates every parameter of the signature.
//
// The returned cleanup func is never nil and must be called once the request
// is done with the values (it removes spooled upload files). On failure the
// error is either a routing *errs.HTTPError (enum path segment that is not a
// member), an *errs.ValidationError listing every offending field, or a
// transport error from reading the body.
func (s *Signature) Bind(c echo.Context, opts BindOptions) (*Values, func(), error) {
	b := &binder{sig: s, c: c, values: newValues()}
	cleanup := func() {}

	for _, p := range s.Params {
		if p.Source != SourcePath {
			continue
		}
		if err := b.bindPath(p); err != nil {
			return nil, cleanup, err
		}
	}

	for _, source := range []Source{SourceQuery, SourceHeader, SourceCookie} {
		for _, p := range s.Params {
			if p.Source == source {
				b.bindText(p)
			}
		}
	}

	if len(s.body) > 0 {
		if err := b.bindBody(); err != nil {
			return nil, cleanup, err
		}
	}

	if len(s.form) > 0 {
		release, err := b.bindForm(opts)
		cleanup = release
		if err != nil {
			return nil, cleanup, err
		}
	}

	if len(b.errors) > 0 {
		return nil, cleanup, errs.NewValidationError(b.errors)
	}
	return b.values, cleanup, nil
}

func (b *binder) fail(fieldErrors ...errs.FieldError) {
	b.errors = append(b.errors, fieldErrors...)
}

func (b *binder) missing(p Param, loc []any) {
	if p.Required {
		b.fail(validation.Missing(loc))
		return
	}
	b.values.put(p.Name, schema.Clone(p.Default), false)
}

func (b *binder) bindPath(p Param) error {
	raw := b.c.Param(p.Name)
	loc := []any{"path", p.Name}

	// An enum segment outside the set never matched a route.
	if p.Type.Kind == schema.KindEnum && !p.Type.Enum.Contains(raw) {
		return errs.NewNotFoundError("")
	}

	v, fe := p.Type.CoerceText(raw, loc)
	if fe != nil {
		b.fail(*fe)
		return nil
	}
	b.accept(p, v, loc)
	return nil
}

// bindText handles the query, header and cookie sources.
func (b *binder) bindText(p Param) {
	key := p.externalName()
	loc := []any{p.Source.String(), key}

	var raws []string
	switch p.Source {
	case SourceQuery:
		raws = b.c.QueryParams()[key]
	case SourceHeader:
		raws = b.c.Request().Header.Values(key)
	case SourceCookie:
		if cookie, err := b.c.Cookie(key); err == nil {
			raws = []string{cookie.Value}
		}
	}

	if len(raws) == 0 {
		b.missing(p, loc)
		return
	}

	if p.Type.Kind == schema.KindList {
		b.bindTextList(p, raws, loc)
		return
	}

	// Repeated query keys: the last one wins. Repeated headers: the first one.
	raw := raws[len(raws)-1]
	if p.Source == SourceHeader {
		raw = raws[0]
	}

	v, fe := p.Type.CoerceText(raw, loc)
	if fe != nil {
		b.fail(*fe)
		return
	}
	b.accept(p, v, loc)
}

func (b *binder) bindTextList(p Param, raws []string, loc []any) {
	items := make([]any, 0, len(raws))
	failed := false
	for i, raw := range raws {
		v, fe := p.Type.Elem.CoerceText(raw, validation.Loc(loc, i))
		if fe != nil {
			b.fail(*fe)
			failed = true
			continue
		}
		items = append(items, v)
	}
	if !failed {
		b.accept(p, items, loc)
	}
}

// accept runs the declared constraints and stores the value as explicitly set.
func (b *binder) accept(p Param, v any, loc []any) {
	if fe := validation.Check(v, loc, p.Constraints); fe != nil {
		b.fail(*fe)
		return
	}
	b.values.put(p.Name, v, true)
}

func (b *binder) bindBody() error {
	data, err := io.ReadAll(b.c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return errors.Wrap(err, "read request body")
	}

	var raw any
	present := len(bytes.TrimSpace(data)) > 0
	if present {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			b.fail(validation.InvalidJSON(err, []any{"body"}))
			return nil
		}
		present = raw != nil
	}

	if !b.sig.embedBody {
		p := b.sig.body[0]
		b.bindBodyValue(p, raw, present, []any{"body"})
		return nil
	}

	entries, isObject := raw.(map[string]any)
	if present && !isObject {
		b.fail(validation.InvalidType("dict", raw, []any{"body"}))
		return nil
	}

	for _, p := range b.sig.body {
		v, ok := entries[p.externalName()]
		b.bindBodyValue(p, v, ok && v != nil, []any{"body", p.externalName()})
	}
	return nil
}

func (b *binder) bindBodyValue(p Param, raw any, present bool, loc []any) {
	if !present {
		b.missing(p, loc)
		return
	}
	v, fieldErrors := p.Type.Coerce(raw, loc)
	if len(fieldErrors) > 0 {
		b.fail(fieldErrors...)
		return
	}
	b.accept(p, v, loc)
}

func (b *binder) bindForm(opts BindOptions) (func(), error) {
	req := b.c.Request()

	err := req.ParseMultipartForm(opts.MemoryThreshold)
	release := func() {
		if req.MultipartForm != nil {
			_ = req.MultipartForm.RemoveAll()
		}
	}
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return release, he
		}
		return release, errs.NewBadRequestError("There was an error parsing the body")
	}

	for _, p := range b.sig.form {
		loc := []any{"body", p.externalName()}

		if p.Source == SourceForm {
			raws := req.PostForm[p.externalName()]
			if len(raws) == 0 {
				b.missing(p, loc)
				continue
			}
			v, fe := p.Type.CoerceText(raws[len(raws)-1], loc)
			if fe != nil {
				b.fail(*fe)
				continue
			}
			b.accept(p, v, loc)
			continue
		}

		var headers []*multipart.FileHeader
		if req.MultipartForm != nil {
			headers = req.MultipartForm.File[p.externalName()]
		}
		if len(headers) == 0 {
			b.missing(p, loc)
			continue
		}
		if err := b.bindFiles(p, headers); err != nil {
			return release, err
		}
	}

	return release, nil
}

func (b *binder) bindFiles(p Param, headers []*multipart.FileHeader) error {
	if !p.Multiple {
		headers = headers[:1]
	}

	files := make([]any, 0, len(headers))
	for _, fh := range headers {
		if p.File == UploadKind {
			files = append(files, newUploadFile(fh))
			continue
		}
		data, err := readPart(fh)
		if err != nil {
			return err
		}
		files = append(files, data)
	}

	if p.Multiple {
		b.values.put(p.Name, files, true)
	} else {
		b.values.put(p.Name, files[0], true)
	}
	return nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "open upload %q", fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read upload %q", fh.Filename)
	}
	return data, nil
}
