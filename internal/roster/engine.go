package roster

import (
	"time"

	"go.uber.org/zap"
)

// Engine 排班引擎门面：目录 + 日链 + 变更解析器。
//
// 单写者模型：引擎自身不加锁，所有修改与其级联在发起调用内同步原子完成，
// 并发提交方（如 HTTP 层）须在外部串行化后再进入引擎。
type Engine struct {
	catalog  *Catalog
	chain    *DayChain
	resolver *ChangeResolver
}

// NewEngine 创建引擎。epoch 为日链纪元，零值 = 从首个请求日起建链。
func NewEngine(epoch time.Time, logger *zap.Logger) *Engine {
	catalog := NewCatalog()
	chain := NewDayChain(catalog, epoch, logger)
	return &Engine{
		catalog:  catalog,
		chain:    chain,
		resolver: NewChangeResolver(chain, logger),
	}
}

// Catalog 目录
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Chain 日链
func (e *Engine) Chain() *DayChain { return e.chain }

// Tallies 月度值班计分簿
func (e *Engine) Tallies() *TallyBook { return e.chain.Tallies() }

// ApplyChange 变更提交唯一入口
func (e *Engine) ApplyChange(rec *ChangeRecord) error { return e.resolver.ApplyChange(rec) }

// ApplyPlanning 批量计划导入
func (e *Engine) ApplyPlanning(rec *PlanningRecord) error { return e.resolver.ApplyPlanning(rec) }

// GetDay 取单日状态（按需物化）
func (e *Engine) GetDay(date time.Time) *Day { return e.chain.GetDay(date) }

// Month 取整月状态（按需物化）
func (e *Engine) Month(year int, month time.Month) []*Day {
	return e.chain.GetOrExtendMonth(year, month)
}
