package models

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
)

// MonthsInYear — число месячных слотов в каждой записи.
const MonthsInYear = 12

// MonthlyStatus — отметки об оплате по месяцам. Ключи — номера месяцев 1–12,
// в JSON сериализуются строками "1".."12".
type MonthlyStatus map[int]bool

// NewMonthlyStatus возвращает статус с двенадцатью неоплаченными месяцами.
func NewMonthlyStatus() MonthlyStatus {
	ms := make(MonthlyStatus, MonthsInYear)
	for m := 1; m <= MonthsInYear; m++ {
		ms[m] = false
	}
	return ms
}

// Entry — именованный субъект (например, ученик) с помесячными отметками.
type Entry struct {
	Name                 string        `json:"name"`
	MonthlyPaymentStatus MonthlyStatus `json:"monthlyPaymentStatus"`
}

// Group — именованная коллекция записей внутри леджера.
type Group struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Ledger — документ с группами одного аккаунта. Читается и пишется целиком;
// Version используется хранилищем для оптимистической проверки при записи.
type Ledger struct {
	UserUID   string    `json:"userID"`
	Groups    []Group   `json:"groups"`
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewLedger возвращает пустой леджер для аккаунта.
func NewLedger(userUID string) *Ledger {
	return &Ledger{
		UserUID: userUID,
		Groups:  []Group{},
	}
}

// GroupNames возвращает имена групп в порядке создания.
func (l *Ledger) GroupNames() []string {
	names := make([]string, 0, len(l.Groups))
	for _, g := range l.Groups {
		names = append(names, g.Name)
	}
	return names
}

// FindGroup возвращает указатель на группу с данным именем или nil.
// Имена сравниваются побайтово, без нормализации.
func (l *Ledger) FindGroup(name string) *Group {
	for i := range l.Groups {
		if l.Groups[i].Name == name {
			return &l.Groups[i]
		}
	}
	return nil
}

// AddGroup добавляет пустую группу в конец документа.
// Возвращает apperr.ErrConflict, если группа с таким именем уже есть.
func (l *Ledger) AddGroup(name string) error {
	if l.FindGroup(name) != nil {
		return fmt.Errorf("group %q: %w", name, apperr.ErrConflict)
	}
	l.Groups = append(l.Groups, Group{Name: name, Entries: []Entry{}})
	return nil
}

// AddEntry добавляет запись с двенадцатью неоплаченными месяцами в конец группы.
// Возвращает apperr.ErrNotFound для отсутствующей группы и apperr.ErrConflict
// для дубликата имени записи.
func (l *Ledger) AddEntry(groupName, entryName string) error {
	group := l.FindGroup(groupName)
	if group == nil {
		return fmt.Errorf("group %q: %w", groupName, apperr.ErrNotFound)
	}
	for _, e := range group.Entries {
		if e.Name == entryName {
			return fmt.Errorf("entry %q in group %q: %w", entryName, groupName, apperr.ErrConflict)
		}
	}
	group.Entries = append(group.Entries, Entry{
		Name:                 entryName,
		MonthlyPaymentStatus: NewMonthlyStatus(),
	})
	return nil
}

// SetPaymentStatus выставляет отметку одного месяца у записи.
// Месяц вне диапазона 1–12 — apperr.ErrValidation; отсутствующая группа
// или запись — apperr.ErrNotFound.
func (l *Ledger) SetPaymentStatus(groupName, entryName string, month int, paid bool) error {
	if month < 1 || month > MonthsInYear {
		return fmt.Errorf("month must be between 1 and 12, got %d: %w", month, apperr.ErrValidation)
	}
	group := l.FindGroup(groupName)
	if group == nil {
		return fmt.Errorf("group %q: %w", groupName, apperr.ErrNotFound)
	}
	for i := range group.Entries {
		if group.Entries[i].Name == entryName {
			group.Entries[i].MonthlyPaymentStatus[month] = paid
			return nil
		}
	}
	return fmt.Errorf("entry %q in group %q: %w", entryName, groupName, apperr.ErrNotFound)
}

// RemoveEntry удаляет запись из группы. Отсутствующая группа —
// apperr.ErrNotFound; отсутствующая запись — тихий no-op.
func (l *Ledger) RemoveEntry(groupName, entryName string) error {
	group := l.FindGroup(groupName)
	if group == nil {
		return fmt.Errorf("group %q: %w", groupName, apperr.ErrNotFound)
	}
	filtered := group.Entries[:0]
	for _, e := range group.Entries {
		if e.Name != entryName {
			filtered = append(filtered, e)
		}
	}
	group.Entries = filtered
	return nil
}
