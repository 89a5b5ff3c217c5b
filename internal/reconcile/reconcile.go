package reconcile

import "strings"

// Envelope is the uniform provider response shape: every endpoint wraps its
// payload in { "data": ... }.
type Envelope struct {
	Data any `json:"data"`
}

// Object is a domain object under construction: an untyped JSON tree built
// up across endpoint passes.
type Object = map[string]any

// Record is a flat, column-keyed structure ready for persistence.
type Record = map[string]any

// ReconcileList projects a collection envelope into one domain object per
// element. env.Data must be an array; anything else is a ShapeError. When
// existing is provided, element i seeds from a structural clone of
// existing[i]. Output order follows input order.
func ReconcileList(env Envelope, domainType, endpoint string, pm ProviderMap, existing []Object) ([]Object, error) {
	entries, err := scopedEntries(pm, domainType, endpoint)
	if err != nil {
		return nil, err
	}

	items, ok := env.Data.([]any)
	if !ok {
		return nil, &ShapeError{DomainType: domainType, Endpoint: endpoint, Reason: "data is not an array"}
	}

	out := make([]Object, 0, len(items))
	for i, item := range items {
		acc := Object{}
		if i < len(existing) && existing[i] != nil {
			acc = cloneObject(existing[i])
		}
		fresh := Object{}
		applyEntries(fresh, item, entries, env, false)
		NormalizePrices(fresh)
		mergeObject(acc, fresh)
		out = append(out, acc)
	}
	return out, nil
}

// ReconcileOne projects a single-object envelope into a domain object,
// merging into a structural clone of existing when provided. With
// dataAsArrayField set, an entry whose source is exactly "data" receives
// the whole envelope payload verbatim; this serves endpoints whose entire
// body is stored under one target field (images).
func ReconcileOne(env Envelope, domainType, endpoint string, pm ProviderMap, existing Object, dataAsArrayField bool) (Object, error) {
	entries, err := scopedEntries(pm, domainType, endpoint)
	if err != nil {
		return nil, err
	}

	acc := Object{}
	if existing != nil {
		acc = cloneObject(existing)
	}
	fresh := Object{}
	applyEntries(fresh, env.Data, entries, env, dataAsArrayField)
	NormalizePrices(fresh)
	mergeObject(acc, fresh)
	return acc, nil
}

// scopedEntries filters the domain type's entries down to the ones scoped
// to the originating endpoint. Non-matching and placeholder entries are
// silently excluded; an unknown domain type is a ConfigurationError.
func scopedEntries(pm ProviderMap, domainType, endpoint string) ([]ProviderEntry, error) {
	all, ok := pm[domainType]
	if !ok {
		return nil, &ConfigurationError{DomainType: domainType}
	}
	scoped := make([]ProviderEntry, 0, len(all))
	for _, e := range all {
		if e.Source != nil && e.Endpoint != nil && *e.Endpoint == endpoint {
			scoped = append(scoped, e)
		}
	}
	return scoped, nil
}

func applyEntries(acc Object, data any, entries []ProviderEntry, env Envelope, dataAsArrayField bool) {
	for _, e := range entries {
		source := *e.Source

		var value any
		var ok bool
		switch {
		case dataAsArrayField && source == "data":
			value, ok = env.Data, env.Data != nil
		case source == "":
			value, ok = data, data != nil
		default:
			value, ok = Get(data, strings.TrimPrefix(source, "data."))
		}
		if ok {
			Set(acc, e.Target, value)
		}
	}
}

// mergeObject folds src into dst: maps merge recursively, everything else
// overwrites. Each pass reconciles into a fresh object and normalizes only
// that, so fields converted by earlier passes are never divided again.
func mergeObject(dst, src Object) {
	for k, v := range src {
		if sm, ok := v.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				mergeObject(dm, sm)
				continue
			}
		}
		dst[k] = v
	}
}

func cloneObject(src Object) Object {
	dst := make(Object, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneObject(t)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = cloneValue(el)
		}
		return out
	default:
		return v
	}
}
