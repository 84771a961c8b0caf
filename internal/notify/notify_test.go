package notify

import (
	"strings"
	"testing"
)

func TestShowStartsEntering(t *testing.T) {
	p, cmd := New().Show("저장되었습니다", KindSuccess)
	if cmd == nil {
		t.Fatal("expected timer commands")
	}
	if p.Phase() != PhaseEntering {
		t.Fatalf("phase = %v, want entering", p.Phase())
	}
	n, ok := p.Current()
	if !ok || n.Message != "저장되었습니다" || n.Icon != "✅" {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestLifecycle(t *testing.T) {
	p, _ := New().Show("hello", KindInfo)
	gen := p.gen

	p, _ = p.Update(phaseMsg{gen: gen, phase: PhaseVisible})
	if p.Phase() != PhaseVisible {
		t.Fatalf("phase = %v, want visible", p.Phase())
	}

	p, cmd := p.Update(phaseMsg{gen: gen, phase: PhaseLeaving})
	if p.Phase() != PhaseLeaving {
		t.Fatalf("phase = %v, want leaving", p.Phase())
	}
	if cmd == nil {
		t.Fatal("expected exit timer when leaving")
	}

	p, _ = p.Update(phaseMsg{gen: gen, phase: PhaseHidden})
	if _, ok := p.Current(); ok {
		t.Error("expected notification removed")
	}
	if p.View(80) != "" {
		t.Error("hidden presenter should render nothing")
	}
}

func TestNewNotificationPreemptsOld(t *testing.T) {
	p, _ := New().Show("first", KindInfo)
	oldGen := p.gen

	p, _ = p.Show("second", KindError)
	n, _ := p.Current()
	if n.Message != "second" {
		t.Fatalf("current = %q, want second", n.Message)
	}

	// Timers of the first notification fire after it was replaced.
	p, cmd := p.Update(phaseMsg{gen: oldGen, phase: PhaseLeaving})
	if cmd != nil || p.Phase() != PhaseEntering {
		t.Errorf("stale leave timer changed state: phase %v", p.Phase())
	}
	p, _ = p.Update(phaseMsg{gen: oldGen, phase: PhaseHidden})
	if n, ok := p.Current(); !ok || n.Message != "second" {
		t.Error("stale removal timer removed the new notification")
	}
}

func TestLeavingBeforeRevealSkipsVisible(t *testing.T) {
	p, _ := New().Show("x", KindInfo)
	p, _ = p.Update(phaseMsg{gen: p.gen, phase: PhaseLeaving})
	p, _ = p.Update(phaseMsg{gen: p.gen, phase: PhaseVisible})
	if p.Phase() != PhaseLeaving {
		t.Errorf("late reveal must not resurrect a leaving notification, phase %v", p.Phase())
	}
}

func TestShowQuest(t *testing.T) {
	p, _ := New().ShowQuest("💊", "복용 중인 약물 언급하기", "하")
	n, ok := p.Current()
	if !ok {
		t.Fatal("expected a notification")
	}
	if n.Kind != KindQuest || n.Title != "퀘스트 완료! 🎉" {
		t.Errorf("unexpected quest notification %+v", n)
	}
	if n.Message != "복용 중인 약물 언급하기 (하 등급 개선)" {
		t.Errorf("message = %q", n.Message)
	}
	if p.timing != QuestTiming {
		t.Errorf("quest notifications use the longer timing, got %+v", p.timing)
	}

	p, _ = p.ShowQuest("📋", "증상을 구체적으로 설명하기", "")
	n, _ = p.Current()
	if strings.Contains(n.Message, "등급") {
		t.Errorf("default quests have no grade suffix: %q", n.Message)
	}
}

func TestViewContainsMessage(t *testing.T) {
	p, _ := New().Show("네트워크 오류", KindError)
	if !strings.Contains(p.View(80), "네트워크 오류") {
		t.Error("view should contain the message")
	}
}

func TestUpdateHandlesShowMessages(t *testing.T) {
	p, cmd := New().Update(Cmd("복사되었습니다", KindSuccess)())
	if cmd == nil {
		t.Fatal("expected timers")
	}
	if n, ok := p.Current(); !ok || n.Message != "복사되었습니다" {
		t.Errorf("unexpected notification %+v", n)
	}

	p, _ = p.Update(QuestCmd("💊", "약물 언급하기", "")())
	if n, _ := p.Current(); n.Kind != KindQuest {
		t.Errorf("expected quest notification, got %+v", n)
	}
}
