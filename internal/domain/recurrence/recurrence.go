package recurrence

import (
	"time"

	"github.com/google/uuid"

	"github.com/PawshSuite/groom-scheduler/internal/httperr"
)

// ===============================
// Recurrence Interval
// ===============================

type Unit string

const (
	UnitDay   Unit = "day"
	UnitWeek  Unit = "week"
	UnitMonth Unit = "month"
	UnitYear  Unit = "year"
)

const (
	// Valor máximo aceito para o intervalo.
	MaxValue = 365

	// Ocorrências são materializadas até um ano após a âncora.
	MaxOccurrences = 366
)

// Interval define "a cada N dias/semanas/meses/anos".
type Interval struct {
	Value int  `json:"value"`
	Unit  Unit `json:"unit"`
}

func IsValidUnit(u Unit) bool {
	switch u {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		return true
	}
	return false
}

// Validate rejeita o intervalo antes de qualquer persistência.
func (i Interval) Validate() error {
	if i.Value < 1 || i.Value > MaxValue {
		return httperr.ErrBusiness("invalid_recurrence")
	}
	if !IsValidUnit(i.Unit) {
		return httperr.ErrBusiness("invalid_recurrence")
	}
	return nil
}

// Next calcula a próxima ocorrência a partir de t.
// AddDate preserva o wall-clock no timezone de t (troca de DST inclusa).
func (i Interval) Next(t time.Time) time.Time {
	switch i.Unit {
	case UnitDay:
		return t.AddDate(0, 0, i.Value)
	case UnitWeek:
		return t.AddDate(0, 0, 7*i.Value)
	case UnitMonth:
		return t.AddDate(0, i.Value, 0)
	case UnitYear:
		return t.AddDate(i.Value, 0, 0)
	}
	return t
}

// Occurrences expande a série a partir da âncora (inclusa) até o horizonte.
// O corte por MaxOccurrences segura unidades pequenas com valor 1.
func (i Interval) Occurrences(anchor time.Time, horizon time.Time) []time.Time {
	out := []time.Time{anchor}

	cur := anchor
	for len(out) < MaxOccurrences {
		cur = i.Next(cur)
		if cur.After(horizon) {
			break
		}
		out = append(out, cur)
	}

	return out
}

// NewSeriesID gera o recurring_id compartilhado pelas ocorrências.
func NewSeriesID() string {
	return uuid.NewString()
}
