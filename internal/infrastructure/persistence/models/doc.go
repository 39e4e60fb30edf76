// Package models contains the GORM persistence models and their converters
// to and from domain entities. Every synchronized entity carries the Odoo
// correlation columns (odoo_id, odoo_error, odoo_update_time) so lookups by
// foreign identifier stay indexed.
package models
