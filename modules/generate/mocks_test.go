package generate

import (
	"context"
	"encoding/base64"
	"errors"

	"photobooth-ai-server/modules/gemini"
	"photobooth-ai-server/modules/openaiedit"
)

// fakeB64 - preview 압축이 조용히 skip되도록 PNG가 아닌 base64를 쓴다
var fakeB64 = base64.StdEncoding.EncodeToString([]byte("fake image"))

// mockGemini - tier별 결과/에러를 지정하는 ImageEditor 스텁
type mockGemini struct {
	flashResult string
	flashErr    error
	proResult   string
	proErr      error

	flashCalls int
	proCalls   int
}

func (m *mockGemini) EditImage(ctx context.Context, req *gemini.EditRequest, tier gemini.Tier) (*gemini.EditResult, error) {
	if tier == gemini.TierPro {
		m.proCalls++
		if m.proErr != nil {
			return nil, m.proErr
		}
		return &gemini.EditResult{ImageBase64: m.proResult, Model: "pro"}, nil
	}

	m.flashCalls++
	if m.flashErr != nil {
		return nil, m.flashErr
	}
	return &gemini.EditResult{ImageBase64: m.flashResult, Model: "flash"}, nil
}

// mockOpenAI - OpenAIEditor 스텁
type mockOpenAI struct {
	result string
	err    error
	calls  int
}

func (m *mockOpenAI) Edit(ctx context.Context, req *openaiedit.EditRequest) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.result, nil
}

// mockCounter - SubjectCounter 스텁
type mockCounter struct {
	count int
	err   error
	calls int
}

func (m *mockCounter) CountSubjects(ctx context.Context, imageBase64 string) (int, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.count, nil
}

// mockHub - broadcast된 이벤트 기록
type mockHub struct {
	events []GenerationEvent
}

func (m *mockHub) Broadcast(sessionID string, event interface{}) {
	if e, ok := event.(GenerationEvent); ok {
		m.events = append(m.events, e)
	}
}

func (m *mockHub) stages() []string {
	stages := make([]string, 0, len(m.events))
	for _, e := range m.events {
		stages = append(stages, e.Stage)
	}
	return stages
}

var errProvider = errors.New("provider exploded")
