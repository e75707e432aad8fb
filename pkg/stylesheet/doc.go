// Package stylesheet turns an author style directive into a stylesheet link
// rooted under the runtime code base path and attaches it to a document head
// at most once per href. It never fetches or validates the stylesheet.
package stylesheet
