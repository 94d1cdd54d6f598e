package state

import (
	"sync"

	"github.com/devxpy/gea-telegram-bot/internal/model"
)

// Manager управляет состояниями диалогов пользователей
type Manager struct {
	mu      sync.RWMutex
	dialogs map[int64]*Dialog // telegramID -> Dialog
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		dialogs: make(map[int64]*Dialog),
	}
}

// State получает текущее состояние диалога пользователя
func (m *Manager) State(telegramID int64) DialogState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if dialog, exists := m.dialogs[telegramID]; exists {
		return dialog.State
	}
	return StateNone
}

// SetState устанавливает состояние диалога. StateNone завершает диалог
// и выбрасывает черновики.
func (m *Manager) SetState(telegramID int64, state DialogState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state == StateNone {
		delete(m.dialogs, telegramID)
		return
	}

	m.dialog(telegramID).State = state
}

// DraftUser получает черновик пользователя текущего диалога
func (m *Manager) DraftUser(telegramID int64) *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if dialog, exists := m.dialogs[telegramID]; exists {
		return dialog.DraftUser
	}
	return nil
}

// SetDraftUser сохраняет черновик пользователя в текущем диалоге
func (m *Manager) SetDraftUser(telegramID int64, user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dialog(telegramID).DraftUser = user
}

// DraftAppointment получает черновик заявки текущего диалога
func (m *Manager) DraftAppointment(telegramID int64) *model.Appointment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if dialog, exists := m.dialogs[telegramID]; exists {
		return dialog.DraftAppointment
	}
	return nil
}

// SetDraftAppointment сохраняет черновик заявки в текущем диалоге
func (m *Manager) SetDraftAppointment(telegramID int64, appointment *model.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dialog(telegramID).DraftAppointment = appointment
}

// Clear завершает диалог и выбрасывает черновики
func (m *Manager) Clear(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.dialogs, telegramID)
}

// dialog возвращает запись диалога, создавая её при необходимости.
// Вызывается только под write-lock.
func (m *Manager) dialog(telegramID int64) *Dialog {
	if _, exists := m.dialogs[telegramID]; !exists {
		m.dialogs[telegramID] = &Dialog{State: StateNone}
	}
	return m.dialogs[telegramID]
}
