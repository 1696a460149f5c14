package utils

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate       = errors.New("data inválida, use o formato YYYY-MM-DD")
	ErrSinceAfterUntil   = errors.New("a data de início não pode ser posterior à data de fim")
	ErrUntilInFuture     = errors.New("a data de fim não pode estar no futuro")
	ErrTimeRangeTooLarge = errors.New("o intervalo de datas excede o máximo permitido")
)

// ValidateDateRange aplica as regras do seletor de datas: since <= until,
// until não pode estar no futuro e o intervalo não pode passar de maxDays.
func ValidateDateRange(since, until string, now time.Time, maxDays int) error {
	sinceDate, err := time.Parse(time.DateOnly, since)
	if err != nil {
		return fmt.Errorf("%w: since=%q", ErrInvalidDate, since)
	}

	untilDate, err := time.Parse(time.DateOnly, until)
	if err != nil {
		return fmt.Errorf("%w: until=%q", ErrInvalidDate, until)
	}

	if sinceDate.After(untilDate) {
		return ErrSinceAfterUntil
	}

	utcNow := now.UTC()
	today := time.Date(utcNow.Year(), utcNow.Month(), utcNow.Day(), 0, 0, 0, 0, time.UTC)
	if untilDate.After(today) {
		return ErrUntilInFuture
	}

	days := int(untilDate.Sub(sinceDate).Hours() / 24)
	if days > maxDays {
		return fmt.Errorf("%w: %d dias (máximo %d)", ErrTimeRangeTooLarge, days, maxDays)
	}

	return nil
}
