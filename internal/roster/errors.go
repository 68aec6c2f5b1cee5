package roster

import "errors"

// ── 引擎错误分类 ──
//
// 上层（Service / Handler）通过 errors.Is 映射到业务响应码。

var (
	// ErrUnknownReference 变更记录引用了目录/日链中不存在的人员、病区或日期
	ErrUnknownReference = errors.New("引用的人员/病区/日期不存在")
	// ErrDuplicateKey 目录加载时存在重复 ID，本次加载整体失败，注册表保持原状
	ErrDuplicateKey = errors.New("目录加载存在重复 ID")
	// ErrInvalidRange until 早于起始日，或批量导入的结束日早于开始日
	ErrInvalidRange = errors.New("结束日期早于开始日期")
	// ErrApprovedLocked 目标日期不晚于病区的审批锁定日，拒绝修改
	ErrApprovedLocked = errors.New("该日期已审批锁定，不可修改")
	// ErrInvariantViolation Staffing/Duties 双向索引不一致。
	// 属于程序缺陷，正常运行中不应出现，出现时立即 panic 而非静默修补。
	ErrInvariantViolation = errors.New("Staffing/Duties 双向索引不一致")
)
