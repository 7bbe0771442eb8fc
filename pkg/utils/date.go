package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StartOfDay retorna a meia-noite local do dia de t no fuso loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayBounds retorna [meia-noite local, próxima meia-noite local) do dia de t.
// Usa AddDate para que dias com mudança de horário de verão tenham 23 ou 25 horas.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// LoadLocation carrega o fuso, usando fallback quando name é vazio.
// "Local" é recusado: o dia nunca é calculado no fuso da máquina.
func LoadLocation(name, fallback string) (*time.Location, error) {
	if name == "" {
		name = fallback
	}
	if strings.EqualFold(strings.TrimSpace(name), "Local") {
		return nil, fmt.Errorf("fuso %q não é um fuso IANA", name)
	}
	return time.LoadLocation(name)
}

// ParseClock lê horários no formato HH:MM
func ParseClock(value string) (int, int, error) {
	hourStr, minuteStr, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		return 0, 0, fmt.Errorf("horário %q fora do formato HH:MM", value)
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("hora inválida em %q", value)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("minuto inválido em %q", value)
	}

	return hour, minute, nil
}
