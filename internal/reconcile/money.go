package reconcile

// Monetary fields the provider reports in minor units (cents).
var priceKeys = []string{
	"basePrice",
	"cleaningFee",
	"serviceFee",
	"totalPrice",
	"subtotal",
	"payout",
	"amount",
}

func isPriceKey(k string) bool {
	for _, p := range priceKeys {
		if k == p {
			return true
		}
	}
	return false
}

// NormalizePrices rewrites recognized monetary fields from minor units to
// major units, in place. Fields are matched directly on obj and one level
// under a "pricing" sub-object; a per-call visited set (keyed by field name
// or "pricing.<field>") guards each field against double conversion within
// the pass. Other nested objects and array elements are walked recursively,
// except the "pricing" object and values stored under a monetary key.
//
// Non-numeric values at a monetary key are left untouched. The pass is not
// idempotent across calls: invoking it again on already-converted output
// divides again. Callers run it exactly once per freshly merged object.
func NormalizePrices(obj map[string]any) {
	converted := make(map[string]bool)

	for _, key := range priceKeys {
		if n, ok := toNumber(obj[key]); ok && !converted[key] {
			obj[key] = n / 100
			converted[key] = true
		}
		if pricing, ok := obj["pricing"].(map[string]any); ok {
			if n, ok := toNumber(pricing[key]); ok && !converted["pricing."+key] {
				pricing[key] = n / 100
				converted["pricing."+key] = true
			}
		}
	}

	for k, v := range obj {
		if k == "pricing" || isPriceKey(k) {
			continue
		}
		switch t := v.(type) {
		case map[string]any:
			NormalizePrices(t)
		case []any:
			for _, el := range t {
				if m, ok := el.(map[string]any); ok {
					NormalizePrices(m)
				}
			}
		}
	}
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
