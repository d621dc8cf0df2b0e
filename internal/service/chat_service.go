package service

import (
	"context"
	"fmt"
	"strings"

	"station-chat-be/internal/dto"
	"station-chat-be/internal/entity"
	"station-chat-be/internal/pkg/logger"
	"station-chat-be/internal/repository/jsonstore"
	"station-chat-be/internal/repository/memory"
	"station-chat-be/pkg/llm"
	"station-chat-be/pkg/report"
	"station-chat-be/pkg/resolver"
	"station-chat-be/pkg/resolver/flow"
	"station-chat-be/pkg/store"
)

// EmitFunc receives each event of a streamed answer in order: start first,
// end last.
type EmitFunc func(dto.ChatEvent) error

type IChatService interface {
	Send(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse
	Stream(ctx context.Context, req *dto.ChatRequest, emit EmitFunc) error
}

type chatService struct {
	router   *resolver.Router
	flowMgr  *flow.Manager
	stations *jsonstore.StationStore
	sessions *memory.SessionRepository
	provider llm.LLMProvider
	logger   logger.ILogger
	topK     int
}

func NewChatService(
	router *resolver.Router,
	flowMgr *flow.Manager,
	stations *jsonstore.StationStore,
	sessions *memory.SessionRepository,
	provider llm.LLMProvider,
	sysLogger logger.ILogger,
	topK int,
) IChatService {
	return &chatService{
		router:   router,
		flowMgr:  flowMgr,
		stations: stations,
		sessions: sessions,
		provider: provider,
		logger:   sysLogger,
		topK:     topK,
	}
}

// Send produces the full answer in one shot by collecting the token stream.
func (s *chatService) Send(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse {
	var b strings.Builder
	err := s.Stream(ctx, req, func(ev dto.ChatEvent) error {
		if ev.Type == "token" {
			b.WriteString(ev.Delta)
		}
		return nil
	})
	if err != nil {
		return &dto.ChatResponse{Ok: false, Error: err.Error()}
	}
	return &dto.ChatResponse{Ok: true, Text: b.String(), Session: sessionID(req)}
}

// Stream routes the latest user message and emits the answer as events.
// One turn holds the session lock end to end so concurrent requests on the
// same conversation serialize.
func (s *chatService) Stream(ctx context.Context, req *dto.ChatRequest, emit EmitFunc) error {
	if err := emit(dto.StartEvent()); err != nil {
		return err
	}

	prompt := lastUserMessage(req.Messages)
	sess := s.sessions.GetOrCreate(sessionID(req))
	sess.Lock()
	defer sess.Unlock()

	res := s.router.Route(sess, prompt)
	s.logger.Info("router", "routed utterance", map[string]interface{}{
		"session": sess.ID,
		"tier":    res.Tier,
		"intent":  string(res.Intent),
	})

	switch res.Intent {
	case resolver.IntentCityStatusCount:
		if err := s.handleCount(res, emit); err != nil {
			return err
		}
	case resolver.IntentViz3D:
		if err := s.handleViz3D(ctx, res, emit); err != nil {
			return err
		}
	case resolver.IntentViz:
		if err := s.handleViz(ctx, res, emit); err != nil {
			return err
		}
	case resolver.IntentCityList:
		if err := s.handleCityList(res, emit); err != nil {
			return err
		}
	case resolver.IntentDirectField:
		if err := emitText(emit, res.Answer); err != nil {
			return err
		}
	case resolver.IntentNearbyFlow:
		if err := s.handleNearby(sess, prompt, emit); err != nil {
			return err
		}
	default:
		if err := s.handleFallback(ctx, sess, prompt, emit); err != nil {
			return err
		}
	}

	return emit(dto.EndEvent())
}

func (s *chatService) handleCount(res resolver.Resolution, emit EmitFunc) error {
	rows := s.stations.Search(jsonstore.StationFilter{City: res.City, Status: res.Status, Limit: 1000})
	if err := emit(dto.LogEvent("router", fmt.Sprintf("命中计数直答：%s / %s = %d", res.City, res.Status, len(rows)))); err != nil {
		return err
	}
	return emitText(emit, report.CityStatus(res.City, res.Status, rows))
}

func (s *chatService) handleViz3D(ctx context.Context, res resolver.Resolution, emit EmitFunc) error {
	rows := s.stations.ByCity(res.City)
	stats := report.Aggregate(rows)
	payload := map[string]interface{}{
		"city":  res.City,
		"kind":  "density_3d",
		"stats": stats,
	}
	if err := emit(dto.ToolEvent("plotly", fmt.Sprintf("%s 基站密度曲面（3D）", res.City), payload)); err != nil {
		return err
	}
	return s.explain(ctx, explain3DPrompt(res.City, stats), emit)
}

func (s *chatService) handleViz(ctx context.Context, res resolver.Resolution, emit EmitFunc) error {
	rows := s.stations.ByCity(res.City)
	stats := report.Aggregate(rows)

	if res.ChartAll {
		payload := map[string]interface{}{
			"city":  res.City,
			"kinds": []string{"bar", "pie", "donut", "stacked", "heatmap", "horizontal", "hist"},
			"stats": stats,
		}
		if err := emit(dto.ToolEvent("plotly_batch", fmt.Sprintf("%s 图表总览", res.City), payload)); err != nil {
			return err
		}
		return s.explain(ctx, explainOverviewPrompt(res.City, stats), emit)
	}

	payload := map[string]interface{}{
		"city":  res.City,
		"kind":  res.ChartKind,
		"stats": stats,
	}
	if err := emit(dto.ToolEvent("plotly", chartTitle(res.City, res.ChartKind), payload)); err != nil {
		return err
	}
	return s.explain(ctx, explainChartPrompt(res.City, res.ChartKind, stats), emit)
}

func (s *chatService) handleCityList(res resolver.Resolution, emit EmitFunc) error {
	rows := s.stations.Search(jsonstore.StationFilter{City: res.City, Limit: 300})
	if err := emit(dto.LogEvent("router", fmt.Sprintf("命中城市清单直答：%s（%d条）", res.City, len(rows)))); err != nil {
		return err
	}
	return emitText(emit, report.CityOverview(res.City, rows))
}

func (s *chatService) handleNearby(sess *store.Session, prompt string, emit EmitFunc) error {
	fr := s.flowMgr.Advance(sess, prompt)

	if fr.Kind == flow.KindClarify {
		if err := emit(dto.LogEvent("flow", "等待地标澄清")); err != nil {
			return err
		}
		text := fr.Message
		if len(fr.Options) > 0 {
			text += "\n" + strings.Join(fr.Options, "\n")
		}
		return emitText(emit, text)
	}

	if err := emit(dto.LogEvent("flow", fmt.Sprintf("地标已解析：%s（%s），半径 %dm", fr.POI.Name, fr.POI.City, fr.RadiusM))); err != nil {
		return err
	}

	rows := make([]*entity.Station, 0, len(fr.Hits))
	dists := make([]float64, 0, len(fr.Hits))
	for _, h := range fr.Hits {
		rows = append(rows, h.Station)
		dists = append(dists, h.DistanceM)
	}
	return emitText(emit, report.NearbySummary(fr.POI, fr.RadiusM, rows, dists))
}

func (s *chatService) handleFallback(ctx context.Context, sess *store.Session, prompt string, emit EmitFunc) error {
	topk := resolver.TopK(s.stations.All(), prompt, s.topK)
	ctxMd := report.CompactTable(topk)
	if ctxMd != "" {
		if err := emit(dto.LogEvent("router", fmt.Sprintf("提供 TopK=%d 行上下文给模型", len(topk)))); err != nil {
			return err
		}
	}

	var b strings.Builder
	if ctxMd != "" {
		b.WriteString("【可用基站候选（仅供参考）】\n")
		b.WriteString(ctxMd)
		b.WriteString("\n\n")
	}
	if sess.Station != nil {
		st := sess.Station
		b.WriteString("【当前选中基站（以此为准）】\n")
		fmt.Fprintf(&b, "ID: %s\n城市: %s\n名称: %s\n厂商: %s\n频段: %s\n状态: %s\n",
			st.ID, st.City, st.Name, st.Vendor, st.Band, st.Status)
		b.WriteString("回答规则：\n1) 若用户已选中基站，则优先回答该基站的具体信息；\n2) 若用户问到某个城市的所有基站，则列出该城市的基站清单；\n3) 若资料有冲突，以当前选中基站的信息为准。\n")
	}
	fmt.Fprintf(&b, "\n用户问题：%s", prompt)

	err := s.provider.Stream(ctx, b.String(), func(delta string) error {
		return emit(dto.TokenEvent(delta))
	})
	if err != nil {
		s.logger.Error("chat", "model fallback failed", map[string]interface{}{"error": err.Error()})
		return emitText(emit, "模型暂时不可用，请稍后再试；也可以直接问基站编号、城市清单或“某地标附近”。")
	}
	return nil
}

// explain streams a short model commentary after a tool payload. Model
// unavailability downgrades to silence instead of failing the turn; the
// chart was already delivered.
func (s *chatService) explain(ctx context.Context, prompt string, emit EmitFunc) error {
	err := s.provider.Stream(ctx, prompt, func(delta string) error {
		return emit(dto.TokenEvent(delta))
	})
	if err != nil {
		s.logger.Warn("chat", "chart explanation skipped", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func emitText(emit EmitFunc, text string) error {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if err := emit(dto.TokenEvent(line)); err != nil {
			return err
		}
	}
	return nil
}

func lastUserMessage(messages []dto.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

func sessionID(req *dto.ChatRequest) string {
	if req.SessionId == "" {
		return "__default__"
	}
	return req.SessionId
}
