// Package comparison 负责对账编排：取数、调用对账引擎、落库与缓存
package comparison

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/surveyforge/qeval/internal/config"
	"github.com/surveyforge/qeval/internal/model"
	"github.com/surveyforge/qeval/internal/repository"
	"github.com/surveyforge/qeval/internal/service/reconcile"
)

// Redis key 前缀
const comparisonKeyPrefix = "qeval:comparison:"

// Service 对账编排服务
// 把仓库里的运行结果和标准答案集喂给纯函数流水线，再把结果落库
type Service struct {
	repo     *repository.Repositories
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewService 创建对账编排服务
// redisClient 可以为 nil，此时跳过缓存
func NewService(repo *repository.Repositories, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		redis:    redisClient,
		cacheTTL: time.Duration(cfg.Reconcile.CacheTTL) * time.Second,
	}
}

// CompareRequest 发起一次对账
// GroundTruthID 缺省时按运行的文件名查找标准答案集
type CompareRequest struct {
	RunID         string `json:"run_id" binding:"required"`
	GroundTruthID string `json:"ground_truth_id"`
}

// Compare 将一次抽取运行与标准答案集对账并持久化结果
func (s *Service) Compare(ctx context.Context, req *CompareRequest) (*model.Comparison, error) {
	run, err := s.repo.Run.GetByID(ctx, req.RunID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}
	if run.Status != model.RunStatusCompleted {
		return nil, fmt.Errorf("run %s is %s, only completed runs can be compared", run.ID, run.Status)
	}

	gt, err := s.resolveGroundTruth(ctx, run, req.GroundTruthID)
	if err != nil {
		return nil, err
	}

	left := recordsFromGroundTruth(gt.Questions)
	right := recordsFromRun(run.Questions)

	alignment, err := reconcile.Match(left, right)
	if err != nil {
		return nil, fmt.Errorf("failed to align questions: %w", err)
	}
	report := reconcile.BuildReport(left, right, alignment)
	metrics := reconcile.Aggregate(report)

	cmp := &model.Comparison{
		RunID:             run.ID,
		GroundTruthID:     gt.ID,
		MethodName:        run.MethodName,
		ModelName:         run.ModelName,
		TextMatchRate:     metrics.TextMatchRate,
		CategoryMatchRate: metrics.CategoryMatchRate,
		LabelMatchRate:    metrics.LabelMatchRate,
		OverallScore:      metrics.OverallScore,
		Severity:          string(metrics.Severity),
		ExactCount:        metrics.ExactCount,
		FuzzyCount:        metrics.FuzzyCount,
		MissingCount:      metrics.MissingCount,
		ExtraCount:        metrics.ExtraCount,
		Report:            model.ReportJSON(*report),
	}

	if err := s.repo.Comparison.Create(ctx, cmp); err != nil {
		return nil, fmt.Errorf("failed to save comparison: %w", err)
	}

	s.cacheComparison(ctx, cmp)
	return cmp, nil
}

// resolveGroundTruth 确定本次对账使用的标准答案集
func (s *Service) resolveGroundTruth(ctx context.Context, run *model.ExtractionRun, gtID string) (*model.GroundTruth, error) {
	if gtID != "" {
		gt, err := s.repo.GroundTruth.GetByID(ctx, gtID)
		if err != nil {
			return nil, fmt.Errorf("ground truth not found: %w", err)
		}
		return gt, nil
	}

	normalized := strings.ToLower(strings.TrimSpace(run.FileName))
	gt, err := s.repo.GroundTruth.GetByNormalizedFileName(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no ground truth registered for file %q", run.FileName)
		}
		return nil, fmt.Errorf("failed to look up ground truth: %w", err)
	}
	return gt, nil
}

// GetComparison 获取对账结果，优先走 Redis 缓存
func (s *Service) GetComparison(ctx context.Context, id string) (*model.Comparison, error) {
	if cached := s.cachedComparison(ctx, id); cached != nil {
		return cached, nil
	}

	cmp, err := s.repo.Comparison.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("comparison not found: %w", err)
	}

	s.cacheComparison(ctx, cmp)
	return cmp, nil
}

// GetLatestForRun 获取某次运行最近的对账结果
func (s *Service) GetLatestForRun(ctx context.Context, runID string) (*model.Comparison, error) {
	cmp, err := s.repo.Comparison.GetLatestByRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("no comparison for run %s: %w", runID, err)
	}
	return cmp, nil
}

// ListComparisons 列出对账结果
func (s *Service) ListComparisons(ctx context.Context, groundTruthID string, limit, offset int) ([]*model.Comparison, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.Comparison.List(ctx, groundTruthID, limit, offset)
}

// DeleteComparison 删除对账结果
func (s *Service) DeleteComparison(ctx context.Context, id string) error {
	if _, err := s.repo.Comparison.GetByID(ctx, id); err != nil {
		return fmt.Errorf("comparison not found: %w", err)
	}
	if err := s.repo.Comparison.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comparison: %w", err)
	}
	if s.redis != nil {
		s.redis.Del(ctx, comparisonKeyPrefix+id)
	}
	return nil
}

// LeaderboardEntry 排行榜中一个抽取方案的最新战绩
type LeaderboardEntry struct {
	Tag        model.ApproachTag `json:"tag"`
	Comparison *model.Comparison `json:"comparison"`
}

// Leaderboard 某份标准答案集上的方案排行榜
// 每个方案（方法 + 模型）只取最新一次对账，按总分排序，首位即胜出者
type Leaderboard struct {
	GroundTruthID string             `json:"ground_truth_id"`
	Entries       []LeaderboardEntry `json:"entries"`
}

// Winner 返回排行榜首位，榜单为空时为 nil
func (l *Leaderboard) Winner() *LeaderboardEntry {
	if len(l.Entries) == 0 {
		return nil
	}
	return &l.Entries[0]
}

// BuildLeaderboard 汇总某份标准答案集上各抽取方案的表现
func (s *Service) BuildLeaderboard(ctx context.Context, groundTruthID string) (*Leaderboard, error) {
	if _, err := s.repo.GroundTruth.GetByID(ctx, groundTruthID); err != nil {
		return nil, fmt.Errorf("ground truth not found: %w", err)
	}

	cmps, err := s.repo.Comparison.ListByGroundTruth(ctx, groundTruthID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}

	// 同一方案多次对账只保留最新一次
	latest := make(map[model.ApproachTag]*model.Comparison)
	for _, cmp := range cmps {
		tag := model.ApproachTag{MethodName: cmp.MethodName, ModelName: cmp.ModelName}
		if prev, ok := latest[tag]; !ok || cmp.CreatedAt.After(prev.CreatedAt) {
			latest[tag] = cmp
		}
	}

	board := &Leaderboard{GroundTruthID: groundTruthID, Entries: make([]LeaderboardEntry, 0, len(latest))}
	for tag, cmp := range latest {
		board.Entries = append(board.Entries, LeaderboardEntry{Tag: tag, Comparison: cmp})
	}

	// 总分降序；同分时缺失更少者在前，再按方法名、模型名保证稳定顺序
	sort.Slice(board.Entries, func(i, j int) bool {
		a, b := board.Entries[i].Comparison, board.Entries[j].Comparison
		if a.OverallScore != b.OverallScore {
			return a.OverallScore > b.OverallScore
		}
		if a.MissingCount != b.MissingCount {
			return a.MissingCount < b.MissingCount
		}
		if board.Entries[i].Tag.MethodName != board.Entries[j].Tag.MethodName {
			return board.Entries[i].Tag.MethodName < board.Entries[j].Tag.MethodName
		}
		return board.Entries[i].Tag.ModelName < board.Entries[j].Tag.ModelName
	})

	return board, nil
}

// cacheComparison 写入缓存，失败直接忽略
func (s *Service) cacheComparison(ctx context.Context, cmp *model.Comparison) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(cmp)
	if err != nil {
		return
	}
	s.redis.Set(ctx, comparisonKeyPrefix+cmp.ID, data, s.cacheTTL)
}

// cachedComparison 尝试从缓存读取，未命中或解码失败返回 nil
func (s *Service) cachedComparison(ctx context.Context, id string) *model.Comparison {
	if s.redis == nil || s.cacheTTL <= 0 {
		return nil
	}
	data, err := s.redis.Get(ctx, comparisonKeyPrefix+id).Bytes()
	if err != nil {
		return nil
	}
	var cmp model.Comparison
	if err := json.Unmarshal(data, &cmp); err != nil {
		return nil
	}
	return &cmp
}

// recordsFromGroundTruth 将标准答案问题转换为对账记录
func recordsFromGroundTruth(questions []model.GroundTruthQuestion) []reconcile.Record {
	records := make([]reconcile.Record, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		records = append(records, reconcile.Record{
			ID:            q.ID,
			PrimaryText:   q.QuestionText,
			SecondaryText: q.HelpText,
			Category:      string(q.QuestionType),
			Labels:        q.Answers,
			Origin:        originOf(q.SheetName, q.RowIndex),
			Problematic:   q.Problematic,
		})
	}
	return records
}

// recordsFromRun 将抽取出的问题转换为对账记录
func recordsFromRun(questions []model.ExtractedQuestion) []reconcile.Record {
	records := make([]reconcile.Record, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		records = append(records, reconcile.Record{
			ID:            q.ID,
			PrimaryText:   q.QuestionText,
			SecondaryText: q.HelpText,
			Category:      string(q.QuestionType),
			Labels:        q.Answers,
			Origin:        originOf(q.SheetName, q.RowIndex),
		})
	}
	return records
}

func originOf(sheetName string, rowIndex int) *reconcile.Origin {
	if sheetName == "" && rowIndex == 0 {
		return nil
	}
	return &reconcile.Origin{SheetName: sheetName, RowIndex: rowIndex}
}
