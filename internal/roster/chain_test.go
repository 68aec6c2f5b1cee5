package roster

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

// ── 日链 ──

func TestMonthBoundary(t *testing.T) {
	e := newTestEngine(t)
	days := e.Month(2016, time.April)

	if len(days) != 30 {
		t.Fatalf("2016 年 4 月应有 30 个 Day，实际 %d", len(days))
	}
	if days[0].ID() != "20160401" || days[29].ID() != "20160430" {
		t.Fatalf("月份边界 ID 错误: %s .. %s", days[0].ID(), days[29].ID())
	}
	for i := 1; i < len(days); i++ {
		if days[i].Yesterday() != days[i-1] {
			t.Fatalf("第 %d 天的昨日链接断裂", i)
		}
	}

	feb := e.Month(2016, time.February)
	if len(feb) != 29 {
		t.Fatalf("2016 年 2 月（闰年）应有 29 个 Day，实际 %d", len(feb))
	}
}

func TestGetDayIsIdempotentPerDate(t *testing.T) {
	e := newTestEngine(t)
	dt := date(2016, time.April, 15)

	d1 := e.GetDay(dt)
	d2 := e.GetDay(dt)
	if d1 != d2 {
		t.Fatal("同一日期必须返回同一个 Day 实例")
	}
	if d3 := e.GetDay(time.Date(2016, time.April, 15, 18, 30, 0, 0, time.UTC)); d3 != d1 {
		t.Fatal("带时刻的日期应归一化到同一个 Day")
	}
}

func TestForwardGapFilling(t *testing.T) {
	e := newTestEngine(t)
	a := person(t, e, "a")

	d1 := e.GetDay(date(2016, time.April, 1))
	d1.Staffing("station").Add(a)

	// 跳到 4/10：中间缺口按序补建，续班逐日接续
	d10 := e.GetDay(date(2016, time.April, 10))
	if !d10.Staffing("station").IsMember(a) {
		t.Fatal("缺口补建时续班应逐日接续到 4/10")
	}
	for dt := date(2016, time.April, 2); !dt.After(date(2016, time.April, 9)); dt = dt.AddDate(0, 0, 1) {
		if e.Chain().peek(dt) == nil {
			t.Fatalf("缺口日期 %s 未物化", DayID(dt))
		}
	}
}

func TestBackwardExtensionRelinksHead(t *testing.T) {
	e := newTestEngine(t)
	a := person(t, e, "a")

	head := e.GetDay(date(2016, time.April, 15))
	if head.Yesterday() != nil {
		t.Fatal("链头初始应无昨日")
	}
	headStation := head.Staffing("station")
	headStation.Add(a)
	if !headStation.IsEligible(a) {
		t.Fatal("前置条件：A 应可排")
	}

	// 向更早扩展：链头接上新前驱，原实例不被替换
	e.GetDay(date(2016, time.April, 10))
	if e.GetDay(date(2016, time.April, 15)) != head {
		t.Fatal("既有 Day 不得被替换")
	}
	prev := e.Chain().peek(date(2016, time.April, 14))
	if prev == nil || head.Yesterday() != prev {
		t.Fatal("链头应与补建的前驱正确链接")
	}

	// 接链后前驱的夜班开始影响链头的可排性
	prev.Staffing("night").Add(a)
	if headStation.IsEligible(a) {
		t.Fatal("前驱夜班应勾销链头的可排性")
	}
}

func TestEpochAnchorsChainStart(t *testing.T) {
	catalog := NewCatalog()
	if err := catalog.LoadWards([]*Ward{{ID: "station", Min: 1, Max: 2, Continued: true}}); err != nil {
		t.Fatalf("加载病区失败: %v", err)
	}
	chain := NewDayChain(catalog, date(2016, time.April, 1), zap.NewNop())

	chain.GetDay(date(2016, time.April, 5))
	if chain.peek(date(2016, time.April, 1)) == nil {
		t.Fatal("空链首次取日应从纪元起建链")
	}
	d5 := chain.peek(date(2016, time.April, 5))
	if d5.Yesterday() == nil || d5.Yesterday().ID() != "20160404" {
		t.Fatal("纪元建链后链接应完整")
	}
}

func TestCatalogViews(t *testing.T) {
	e := newTestEngine(t)
	c := e.Catalog()

	if n := len(c.NightshiftWards()); n != 1 || c.NightshiftWards()[0].ID != "night" {
		t.Errorf("夜班视图错误: %d", n)
	}
	if n := len(c.LeaveWards()); n != 1 || c.LeaveWards()[0].ID != "leave" {
		t.Errorf("请假视图错误: %d", n)
	}
	if n := len(c.SpecialDutyWards()); n != 1 || c.SpecialDutyWards()[0].ID != "oncall" {
		t.Errorf("特殊值班视图错误: %d", n)
	}
	if n := len(c.FreeDayWards()); n != 1 || c.FreeDayWards()[0].ID != "weekend" {
		t.Errorf("休息日班视图错误: %d", n)
	}

	kinds := map[string]WardKind{
		"station": WardRegular,
		"night":   WardNightshift,
		"leave":   WardOnLeave,
		"oncall":  WardSpecialDuty,
	}
	for id, want := range kinds {
		if got := c.Ward(id).Kind(); got != want {
			t.Errorf("病区 %s 的类别应为 %v，实际 %v", id, want, got)
		}
	}
}
