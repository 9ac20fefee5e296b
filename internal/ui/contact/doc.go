// Package contact validates the contact form and submits it to a hosted form
// service. The same rules run in the browser script and in the server relay.
package contact
