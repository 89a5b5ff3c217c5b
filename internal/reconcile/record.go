package reconcile

import "fmt"

// Placeholder until the catalog's own widget provisioning assigns one.
const defaultBookingWidgetURL = "https://booking.example.com/widget/default"

// ToRecord flattens a fully merged domain object into a column-keyed
// storage record. Only entries scoped to domainType with a non-nil source
// participate; an unknown table yields an empty record rather than an
// error, since not every table takes part in provider sync. Values are
// copied verbatim: unit normalization already happened during the
// provider→domain stage.
func ToRecord(obj Object, domainType, table string, sm StorageMap) Record {
	rec := Record{}
	for _, e := range sm[table] {
		if e.Source == nil || e.Domain == nil || *e.Domain != domainType {
			continue
		}
		if v, ok := Get(obj, *e.Source); ok {
			rec[e.Column] = v
		}
	}
	if finish, ok := tableFinishers[table]; ok {
		finish(rec)
	}
	return rec
}

// tableFinishers inject fixed or derived fields a table requires beyond
// simple path copies. Keyed by table name so new tables can hook in.
var tableFinishers = map[string]func(Record){
	"properties": finishProperties,
}

func finishProperties(rec Record) {
	rec["booking_widget_url"] = defaultBookingWidgetURL

	if details, ok := rec["bedroom_details"].([]any); ok && len(details) > 0 {
		// The record holds references into the caller's domain object;
		// clone before injecting ids so the object stays untouched.
		details = cloneValue(details).([]any)
		rec["bedroom_details"] = details
		n := 1
		for _, d := range details {
			bedroom, ok := d.(map[string]any)
			if !ok {
				continue
			}
			beds, ok := bedroom["beds"].([]any)
			if !ok || len(beds) == 0 {
				continue
			}
			bedroom["id"] = n
			if name, _ := bedroom["name"].(string); name == "" {
				bedroom["name"] = fmt.Sprintf("Bedroom %d", n)
			}
			if _, ok := bedroom["image"]; !ok {
				bedroom["image"] = nil
			}
			n++
		}
	}

	if _, ok := rec["rating"]; !ok {
		rec["rating"] = 0.0
	}
	if _, ok := rec["review_count"]; !ok {
		rec["review_count"] = 0
	}
}
