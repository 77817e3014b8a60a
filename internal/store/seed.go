package store

import (
	"context"
	"time"

	"userdir/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Seed loads the fixed development dataset: eleven users and ten audit
// entries referencing users 1-10. Explicit IDs advance the store counters so
// the first created user gets ID 12.
func Seed(ctx context.Context, users Store[*domain.User], entries Store[*domain.AuditEntry]) error {
	seedUsers := []*domain.User{
		{ID: 1, Forename: "Peter", Surname: "Loew", DateOfBirth: date(1985, 4, 12), Email: "ploew@example.com", IsActive: true},
		{ID: 2, Forename: "Benjamin Franklin", Surname: "Gates", DateOfBirth: date(1990, 7, 23), Email: "bfgates@example.com", IsActive: true},
		{ID: 3, Forename: "Castor", Surname: "Troy", DateOfBirth: date(1978, 1, 15), Email: "ctroy@example.com", IsActive: false},
		{ID: 4, Forename: "Memphis", Surname: "Raines", DateOfBirth: date(1983, 11, 30), Email: "mraines@example.com", IsActive: true},
		{ID: 5, Forename: "Stanley", Surname: "Goodspeed", DateOfBirth: date(1992, 6, 5), Email: "sgodspeed@example.com", IsActive: true},
		{ID: 6, Forename: "H.I.", Surname: "McDunnough", DateOfBirth: date(1998, 3, 19), Email: "himcdunnough@example.com", IsActive: true},
		{ID: 7, Forename: "Cameron", Surname: "Poe", DateOfBirth: date(1975, 10, 21), Email: "cpoe@example.com", IsActive: false},
		{ID: 8, Forename: "Edward", Surname: "Malus", DateOfBirth: date(1995, 9, 14), Email: "emalus@example.com", IsActive: false},
		{ID: 9, Forename: "Damon", Surname: "Macready", DateOfBirth: date(1980, 5, 8), Email: "dmacready@example.com", IsActive: false},
		{ID: 10, Forename: "Johnny", Surname: "Blaze", DateOfBirth: date(1987, 2, 27), Email: "jblaze@example.com", IsActive: true},
		{ID: 11, Forename: "Robin", Surname: "Feld", DateOfBirth: date(1993, 12, 3), Email: "rfeld@example.com", IsActive: true},
	}

	now := time.Now().UTC()
	seedEntries := []*domain.AuditEntry{
		{ID: 1, UserID: 1, Action: domain.ActionAddUser, UserName: "Admin", Details: "User added - , Id: 1, Forename: Peter, Surname: Loew, DateOfBirth: 01-01-2000, Email: peter@example.com, IsActive: true", Timestamp: now},
		{ID: 2, UserID: 2, Action: domain.ActionEditUser, UserName: "Admin", Details: "User updated - , Forename changed from 'Benjamin Franklin' to 'Ben', Email changed from 'ben@example.com' to 'bfgates@example.com'", Timestamp: now},
		{ID: 3, UserID: 3, Action: domain.ActionDeleteUser, UserName: "Admin", Details: "User deleted - , Id: 3, Email: castro@example.com", Timestamp: now},
		{ID: 4, UserID: 4, Action: domain.ActionAddUser, UserName: "Admin", Details: "User added - , Id: 4, Forename: Memphis, Surname: Raines, DateOfBirth: 02-02-2001, Email: mraines@example.com, IsActive: true", Timestamp: now},
		{ID: 5, UserID: 5, Action: domain.ActionEditUser, UserName: "Admin", Details: "User updated - , Surname changed from 'Stan' to 'Stanley', IsActive changed from 'true' to 'false'", Timestamp: now},
		{ID: 6, UserID: 6, Action: domain.ActionDeleteUser, UserName: "Admin", Details: "User deleted - , Id: 6, Email: hi@example.com", Timestamp: now},
		{ID: 7, UserID: 7, Action: domain.ActionAddUser, UserName: "Admin", Details: "User added - , Id: 7, Forename: Cameron, Surname: Poe, DateOfBirth: 03-03-1998, Email: cameron@example.com, IsActive: true", Timestamp: now},
		{ID: 8, UserID: 8, Action: domain.ActionEditUser, UserName: "Admin", Details: "User updated - , Email changed from 'edward@example.com' to 'edward.jones@example.com'", Timestamp: now},
		{ID: 9, UserID: 9, Action: domain.ActionDeleteUser, UserName: "Admin", Details: "User deleted - , Id: 9, Email: dmacready@example.com", Timestamp: now},
		{ID: 10, UserID: 10, Action: domain.ActionAddUser, UserName: "Admin", Details: "User added - , Id: 10, Forename: Johnny, Surname: Blaze, DateOfBirth: 04-04-1995, Email: jblaze@example.com, IsActive: true", Timestamp: now},
	}

	for _, u := range seedUsers {
		if err := users.Create(ctx, u); err != nil {
			return err
		}
	}
	for _, e := range seedEntries {
		if err := entries.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
