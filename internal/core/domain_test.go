package core

import (
	"errors"
	"testing"
)

func TestIncomeValidate(t *testing.T) {
	valid := Income{
		UserID:      "u1",
		JobID:       "j1",
		Season:      2025,
		BaseEarned:  Money{Cents: 10000},
		TipsEarned:  Money{Cents: 0},
		HoursWorked: 40,
		Date:        NewDate(2025, 6, 15),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid income rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Income)
		want   error
	}{
		{"missing user", func(i *Income) { i.UserID = "" }, ErrUserRequired},
		{"missing job", func(i *Income) { i.JobID = " " }, ErrJobRequired},
		{"zero date", func(i *Income) { i.Date = Date{} }, ErrInvalidDate},
		{"negative base", func(i *Income) { i.BaseEarned = Money{Cents: -1} }, ErrInvalidAmount},
		{"negative tips", func(i *Income) { i.TipsEarned = Money{Cents: -1} }, ErrInvalidAmount},
		{"negative hours", func(i *Income) { i.HoursWorked = -1 }, ErrInvalidHours},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			err := in.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("%v should match ErrValidation", err)
			}
		})
	}
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		UserID:      "u1",
		Season:      2025,
		Amount:      Money{Cents: 4550},
		Tag:         "food",
		Description: "groceries",
		Date:        NewDate(2025, 6, 16),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid expense rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Expense)
		want   error
	}{
		{"missing user", func(e *Expense) { e.UserID = "" }, ErrUserRequired},
		{"zero amount", func(e *Expense) { e.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(e *Expense) { e.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"empty tag", func(e *Expense) { e.Tag = "  " }, ErrEmptyTag},
		{"zero date", func(e *Expense) { e.Date = Date{} }, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ex := valid
			tc.mutate(&ex)
			if err := ex.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	t.Run("long description", func(t *testing.T) {
		ex := valid
		for len(ex.Description) <= 200 {
			ex.Description += "aaaaaaaaaa"
		}
		if err := ex.Validate(); !errors.Is(err, ErrDescriptionTooLong) {
			t.Fatalf("got %v, want ErrDescriptionTooLong", err)
		}
	})

	t.Run("description optional", func(t *testing.T) {
		ex := valid
		ex.Description = ""
		if err := ex.Validate(); err != nil {
			t.Fatalf("empty description should be allowed: %v", err)
		}
	})
}

func TestProfileValidate(t *testing.T) {
	p := Profile{Name: "Ada", Surname: "L", Phone: "123", Email: "ada@example.com"}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
	p.Name = ""
	if err := p.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("got %v, want ErrEmptyName", err)
	}
}
