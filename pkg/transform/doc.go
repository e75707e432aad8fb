// Package transform reconciles the two authored form representations into one
// model.FormModel. Inputs are tagged variants built either directly
// (FromDefinition, FromSheet) or by sniffing raw JSON with Sniff, which
// dispatches only on the discriminating keys: "adaptiveform" selects the aem
// variant and ":type" == "sheet" selects the sheet variant.
package transform
