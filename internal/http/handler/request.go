package handler

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pressroom/internal/auth"
	"pressroom/internal/http/middleware"
	"pressroom/internal/model"
	"pressroom/internal/service"
)

// pageFrom reads ?page= and ?limit=. Missing values take the service
// defaults; non-numeric values are rejected.
func pageFrom(c *fiber.Ctx) (service.Page, error) {
	var p service.Page
	for _, q := range []struct {
		name string
		dst  *int
	}{{"page", &p.Page}, {"limit", &p.Limit}} {
		raw := strings.TrimSpace(c.Query(q.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, service.NewValidationError(q.name, "must be a number")
		}
		*q.dst = n
	}
	return p, nil
}

// callerOf returns the authenticated caller. Routes that call it sit behind
// middleware.Authenticate.
func callerOf(c *fiber.Ctx) (auth.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return auth.Identity{}, auth.ErrInvalidToken
	}
	return id, nil
}

// idParam returns the named path parameter. Ids that are not UUIDs cannot
// exist, so they are reported as not found.
func idParam(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", service.ErrNotFound
	}
	return id, nil
}

func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}

// fileFrom opens the named multipart file. A request without that file
// yields a nil input. The returned func closes the part.
func fileFrom(c *fiber.Ctx, field string) (*service.FileInput, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}
	return openPart(fh)
}

func openPart(fh *multipart.FileHeader) (*service.FileInput, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, fiber.NewError(fiber.StatusBadRequest, "cannot open uploaded file")
	}
	return &service.FileInput{Name: fh.Filename, Reader: f}, func() { _ = f.Close() }, nil
}

// formFields is a request body flattened to text values, whatever its
// encoding. Absent keys are distinguishable from empty ones so that partial
// updates leave omitted fields alone.
type formFields struct {
	values map[string]string
	lists  map[string][]string
}

// readFields accepts multipart, urlencoded and JSON bodies. In JSON, arrays
// of strings are kept as lists and other non-string values as raw JSON text.
func readFields(c *fiber.Ctx) (*formFields, error) {
	ff := &formFields{values: map[string]string{}, lists: map[string][]string{}}
	ct := strings.ToLower(string(c.Request().Header.ContentType()))

	switch {
	case strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid multipart body")
		}
		for k, v := range form.Value {
			if len(v) > 0 {
				ff.values[k] = v[0]
			}
		}
	case strings.HasPrefix(ct, fiber.MIMEApplicationForm):
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			ff.values[string(k)] = string(v)
		})
	case strings.HasPrefix(ct, fiber.MIMEApplicationJSON):
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(c.Body(), &raw); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
		}
		for k, v := range raw {
			var s string
			var list []string
			switch {
			case string(v) == "null":
			case json.Unmarshal(v, &s) == nil:
				ff.values[k] = s
			case json.Unmarshal(v, &list) == nil:
				ff.lists[k] = list
			default:
				ff.values[k] = string(v)
			}
		}
	case len(c.Body()) == 0:
	default:
		return nil, fiber.NewError(fiber.StatusUnsupportedMediaType, "unsupported content type")
	}
	return ff, nil
}

func (f *formFields) str(key string) *string {
	v, ok := f.values[key]
	if !ok {
		return nil
	}
	return &v
}

// list returns the items of a JSON string array, or splits a comma
// separated value. Blank items are dropped either way.
func (f *formFields) list(key string) []string {
	if l, ok := f.lists[key]; ok {
		out := make([]string, 0, len(l))
		for _, v := range l {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	if v, ok := f.values[key]; ok {
		return service.SplitList(v)
	}
	return nil
}

func (f *formFields) integer(key string) (*int, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, service.NewValidationError(key, "must be a number")
	}
	return &n, nil
}

func (f *formFields) boolean(key string) (*bool, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return nil, service.NewValidationError(key, "must be true or false")
	}
	return &b, nil
}

// date parses YYYY-MM-DD, also accepting a full RFC 3339 timestamp.
func (f *formFields) date(key string) (*time.Time, error) {
	v, ok := f.values[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	v = strings.TrimSpace(v)
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, service.NewValidationError(key, "must be a date (YYYY-MM-DD)")
}

// sections decodes a JSON array of {heading, body}. Multipart clients send
// it as a JSON string.
func (f *formFields) sections(key string) ([]model.Section, error) {
	if l, ok := f.lists[key]; ok {
		if len(l) > 0 {
			return nil, service.NewValidationError(key, "must be a JSON array of {heading, body}")
		}
		return []model.Section{}, nil
	}
	v, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	if strings.TrimSpace(v) == "" {
		return []model.Section{}, nil
	}
	var out []model.Section
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		return nil, service.NewValidationError(key, "must be a JSON array of {heading, body}")
	}
	if out == nil {
		out = []model.Section{}
	}
	return out, nil
}
