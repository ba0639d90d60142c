// Package controller holds the controllers shipped with the bootstrap
// server binary. The system controller reports build information, the
// connected databases and their models, and the app_info key/value pairs
// stored by the database modules.
package controller
