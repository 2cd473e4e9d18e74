package sim

import "testing"

func TestKeyState_SetReportsChange(t *testing.T) {
	k := NewKeyState()

	if !k.Set(KeyJump, true) {
		t.Error("Первое нажатие должно считаться изменением")
	}
	// Автоповтор keydown при удержании
	if k.Set(KeyJump, true) {
		t.Error("Повторный keydown не должен считаться изменением")
	}
	if !k.Set(KeyJump, false) {
		t.Error("Отпускание должно считаться изменением")
	}
}

func TestKeyState_UnknownCode(t *testing.T) {
	k := NewKeyState()
	if k.IsPressed("KeyZ") {
		t.Error("Неизвестная клавиша должна быть не нажата")
	}
}

func TestKeyState_ConsumePress(t *testing.T) {
	k := NewKeyState()

	// До нажатия очередь фронтов пуста
	if k.ConsumePress(KeyJump) {
		t.Error("Без нажатия фронта быть не должно")
	}

	k.Set(KeyJump, true)
	if !k.ConsumePress(KeyJump) {
		t.Error("Нажатие должно оставить фронт в очереди")
	}
	// Фронт отдается ровно один раз
	if k.ConsumePress(KeyJump) {
		t.Error("Повторный опрос не должен видеть тот же фронт")
	}

	// Отпускание фронта не добавляет
	k.Set(KeyJump, false)
	if k.ConsumePress(KeyJump) {
		t.Error("Keyup не должен давать фронт")
	}

	// Два полных цикла нажатий - два фронта, но не в одном опросе
	k.Set(KeyJump, true)
	k.Set(KeyJump, false)
	k.Set(KeyJump, true)
	if !k.ConsumePress(KeyJump) {
		t.Error("Ожидали фронт после повторного цикла")
	}
	if k.ConsumePress(KeyJump) {
		t.Error("Фронты не должны накапливаться сверх одного")
	}
}

func TestKeyState_Reset(t *testing.T) {
	k := NewKeyState()
	k.Set(KeyForward, true)
	k.Set(KeyJump, true)

	k.Reset()

	if k.IsPressed(KeyForward) || k.IsPressed(KeyJump) {
		t.Error("После Reset все клавиши должны быть отпущены")
	}
	if k.ConsumePress(KeyJump) {
		t.Error("Reset должен очищать и очередь фронтов")
	}
	// После сброса нажатие снова считается изменением
	if !k.Set(KeyForward, true) {
		t.Error("Нажатие после Reset должно считаться изменением")
	}
}
