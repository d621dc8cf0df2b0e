package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"station-chat-be/internal/dto"
	"station-chat-be/internal/entity"
	"station-chat-be/internal/pkg/logger"
	"station-chat-be/internal/repository/jsonstore"
	"station-chat-be/internal/repository/memory"
	"station-chat-be/pkg/llm"
	"station-chat-be/pkg/resolver"
	"station-chat-be/pkg/resolver/flow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	deltas  []string
	err     error
	prompts []string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.prompts = append(f.prompts, prompt)
	return strings.Join(f.deltas, ""), nil
}

func (f *fakeLLM) Stream(_ context.Context, prompt string, fn llm.StreamFunc, _ ...llm.Option) error {
	if f.err != nil {
		return f.err
	}
	f.prompts = append(f.prompts, prompt)
	for _, d := range f.deltas {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}

func ptr(v float64) *float64 { return &v }

func newStores(t *testing.T) (*jsonstore.StationStore, *jsonstore.POIStore) {
	t.Helper()
	dir := t.TempDir()

	stations, err := jsonstore.NewStationStore(filepath.Join(dir, "stations.json"))
	require.NoError(t, err)
	require.NoError(t, stations.UpsertAll([]*entity.Station{
		{ID: "BJS-001", City: "北京", Name: "北京-示例站1", Vendor: "Huawei", Band: "n78", Status: entity.StatusOnline, Lat: ptr(39.9230), Lng: ptr(116.4560), UpdatedAt: 300},
		{ID: "BJS-002", City: "北京", Name: "北京-示例站2", Vendor: "Nokia", Band: "n41", Status: entity.StatusOffline, Lat: ptr(39.9800), Lng: ptr(116.3000), UpdatedAt: 200},
		{ID: "SHS-001", City: "上海", Name: "上海-示例站1", Vendor: "ZTE", Band: "n41", Status: entity.StatusOnline, Lat: ptr(31.2460), Lng: ptr(121.5110), UpdatedAt: 100},
	}))

	pois, err := jsonstore.NewPOIStore(filepath.Join(dir, "pois.json"))
	require.NoError(t, err)
	require.NoError(t, pois.UpsertAll([]*entity.POI{
		{ID: "POI-1", Name: "万达广场", City: "北京", District: "朝阳区", AddrHint: "建国路93号", Lat: ptr(39.9219), Lng: ptr(116.4551), Popularity: 92, RadiusM: 800},
		{ID: "POI-2", Name: "万达广场", City: "上海", District: "浦东新区", AddrHint: "世纪大道100号", Lat: ptr(31.2452), Lng: ptr(121.5102), Popularity: 85, RadiusM: 700},
	}))

	return stations, pois
}

func newChatFixture(t *testing.T, provider llm.LLMProvider) (IChatService, *memory.SessionRepository) {
	t.Helper()
	stations, pois := newStores(t)

	flowMgr := flow.NewManager(pois, stations, flow.Options{
		DefaultRadiusM: 1000, MinRadiusM: 100, MaxRadiusM: 5000, NearbyLimit: 20, TTL: 90 * time.Second,
	})
	router := resolver.NewRouter(stations, flowMgr)
	sessions := memory.NewSessionRepository()

	svc := NewChatService(router, flowMgr, stations, sessions, provider, logger.NopLogger{}, 12)
	return svc, sessions
}

func collectEvents(t *testing.T, svc IChatService, sessionID, text string) []dto.ChatEvent {
	t.Helper()
	req := &dto.ChatRequest{
		SessionId: sessionID,
		Messages:  []dto.ChatMessage{{Role: "user", Content: text}},
	}
	var events []dto.ChatEvent
	err := svc.Stream(context.Background(), req, func(ev dto.ChatEvent) error {
		events = append(events, ev)
		return nil
	})
	require.NoError(t, err)
	return events
}

func joinTokens(events []dto.ChatEvent) string {
	var b strings.Builder
	for _, ev := range events {
		if ev.Type == "token" {
			b.WriteString(ev.Delta)
		}
	}
	return b.String()
}

func TestStreamEventEnvelope(t *testing.T) {
	provider := &fakeLLM{deltas: []string{"你好", "！"}}
	svc, _ := newChatFixture(t, provider)

	events := collectEvents(t, svc, "s1", "今天天气怎么样")
	require.NotEmpty(t, events)
	assert.Equal(t, "start", events[0].Type)
	assert.Equal(t, "end", events[len(events)-1].Type)
	assert.Equal(t, "你好！", joinTokens(events))

	// The fallback prompt carries the user question.
	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "用户问题：今天天气怎么样")
}

func TestSendCountDirectSkipsModel(t *testing.T) {
	provider := &fakeLLM{deltas: []string{"should not appear"}}
	svc, _ := newChatFixture(t, provider)

	res := svc.Send(context.Background(), &dto.ChatRequest{
		SessionId: "s1",
		Messages:  []dto.ChatMessage{{Role: "user", Content: "北京几个是online的"}},
	})
	require.True(t, res.Ok)
	assert.Contains(t, res.Text, "基站数量")
	assert.Contains(t, res.Text, "online")
	assert.Empty(t, provider.prompts, "direct answers must not hit the model")
}

func TestStreamCityList(t *testing.T) {
	svc, _ := newChatFixture(t, &fakeLLM{})

	events := collectEvents(t, svc, "s1", "上海有哪些基站")
	text := joinTokens(events)
	assert.Contains(t, text, "上海")
	assert.Contains(t, text, "SHS-001")

	var sawLog bool
	for _, ev := range events {
		if ev.Type == "log" && ev.Channel == "router" {
			sawLog = true
		}
	}
	assert.True(t, sawLog, "list answers announce themselves on the log channel")
}

func TestStreamDirectFieldFollowUp(t *testing.T) {
	svc, _ := newChatFixture(t, &fakeLLM{})

	text := joinTokens(collectEvents(t, svc, "s1", "BJS-001的频段是什么"))
	assert.Contains(t, text, "n78")

	// Same session, pronoun follow-up.
	text = joinTokens(collectEvents(t, svc, "s1", "它的状态呢"))
	assert.Contains(t, text, "online")
}

func TestStreamNearbyClarifyThenAnswer(t *testing.T) {
	svc, _ := newChatFixture(t, &fakeLLM{})

	text := joinTokens(collectEvents(t, svc, "s1", "万达广场附近的基站"))
	assert.Contains(t, text, "哪一个")
	assert.Contains(t, text, "1. 万达广场")
	assert.Contains(t, text, "朝阳区")
	assert.NotContains(t, text, "POI-1", "internal ids must not leak")

	text = joinTokens(collectEvents(t, svc, "s1", "第一个"))
	assert.Contains(t, text, "万达广场")
	assert.Contains(t, text, "BJS-001")
}

func TestStreamVizEmitsToolEvent(t *testing.T) {
	provider := &fakeLLM{deltas: []string{"解读"}}
	svc, _ := newChatFixture(t, provider)

	events := collectEvents(t, svc, "s1", "北京的基站出个饼图")

	var tool *dto.ChatEvent
	for i := range events {
		if events[i].Type == "tool" {
			tool = &events[i]
		}
	}
	require.NotNil(t, tool, "chart ask must emit a tool event")
	assert.Equal(t, "plotly", tool.Tool)
	payload, ok := tool.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "pie", payload["kind"])
	assert.Equal(t, "北京", payload["city"])

	// Commentary streams after the payload.
	assert.Equal(t, "解读", joinTokens(events))
}

func TestStreamFallbackModelDown(t *testing.T) {
	provider := &fakeLLM{err: context.DeadlineExceeded}
	svc, _ := newChatFixture(t, provider)

	events := collectEvents(t, svc, "s1", "随便聊聊")
	assert.Equal(t, "end", events[len(events)-1].Type)
	assert.Contains(t, joinTokens(events), "模型暂时不可用")
}

func TestSessionIDDefault(t *testing.T) {
	assert.Equal(t, "__default__", sessionID(&dto.ChatRequest{}))
	assert.Equal(t, "abc", sessionID(&dto.ChatRequest{SessionId: "abc"}))
}
