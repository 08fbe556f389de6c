// Package models contains the GORM persistence models of the shop's tables.
// Domain entities carry no ORM tags; each model converts to and from its
// domain counterpart with ToDomain and FromDomain.
package models
