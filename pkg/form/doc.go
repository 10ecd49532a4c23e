// Package form implements the controller for the student service request
// form. A Controller owns one request.Draft, revalidates the whole draft on
// every SetField, tracks touched fields, derives which conditional panel is
// visible from the current inquiry type, and hands a valid draft to a
// SubmitHandler. Submitting never resets the draft.
package form
