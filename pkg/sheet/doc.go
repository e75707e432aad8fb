// Package sheet decodes document-based form payloads. A sheet is a table
// record ({total, offset, limit, data, ":type": "sheet"}) whose data rows map
// column names to string values. Authored blocks embed the payload as a
// doubly-serialised JSON string inside a <pre><code> node; Decode undoes both
// stages and Fields maps each row onto the shared model.Field shape.
package sheet
