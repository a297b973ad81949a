package seed

import (
	"time"

	"care-hub-go/internal/domain/care"
	"care-hub-go/internal/domain/clock"
	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/domain/workflow"
)

func demoUsers() []directory.User {
	suspendedUntil := clock.MustParseDate("2025-01-01")

	volunteer := func(id, username, name, leaderID string) directory.User {
		return directory.User{ID: id, Username: username, Role: directory.RoleVolunteer, Name: name, Status: directory.StatusNormal, LeaderID: leaderID}
	}

	users := []directory.User{
		{ID: "admin_00", Username: "00000", Role: directory.RoleAdmin, Name: "超级管理员", Status: directory.StatusNormal},

		{ID: "leader_01", Username: "00001", Role: directory.RoleLeader, Name: "张领班", Status: directory.StatusNormal},
		volunteer("vol_02", "00002", "李志愿者", "leader_01"),
		volunteer("vol_04", "00004", "赵一", "leader_01"),
		volunteer("vol_05", "00005", "钱二", "leader_01"),
		volunteer("vol_06", "00006", "孙三", "leader_01"),

		{ID: "leader_02", Username: "00003", Role: directory.RoleLeader, Name: "王领班", Status: directory.StatusNormal},
		volunteer("vol_07", "00007", "李四", "leader_02"),
		volunteer("vol_08", "00008", "周五", "leader_02"),
		volunteer("vol_10", "00010", "郑七", "leader_02"),

		volunteer("vol_09", "00009", "吴六", ""),
	}

	for i := range users {
		if users[i].ID == "vol_10" {
			users[i].Status = directory.StatusSuspended
			users[i].SuspensionEndDate = &suspendedUntil
		}
	}
	return users
}

func demoBeneficiaries() []care.Beneficiary {
	return []care.Beneficiary{
		{ID: "bird_01", Name: "小明", Info: "8岁，父母在外务工，性格内向，喜爱绘画。", AssignedVolunteerID: "vol_02"},
		{ID: "bird_02", Name: "小红", Info: "10岁，目前随祖父母居住，学习成绩优异，需要课外书籍支持。"},
		{ID: "bird_03", Name: "小强", Info: "6岁，活泼好动，需要周末陪伴。", AssignedVolunteerID: "vol_02"},
		{ID: "bird_04", Name: "小兰", Info: "9岁，非常懂事，希望能有志愿者辅导数学作业。", AssignedVolunteerID: "vol_04"},
		{ID: "bird_05", Name: "小刚", Info: "11岁，体育特长生，需要运动装备支持。", AssignedVolunteerID: "vol_05"},
		{ID: "bird_06", Name: "小梅", Info: "7岁，有些自闭倾向，需要心理疏导和耐心陪伴。"},
		{ID: "bird_07", Name: "小丁", Info: "12岁，初中生，需要英语辅导。", AssignedVolunteerID: "vol_07"},
		{ID: "bird_08", Name: "小宝", Info: "5岁，学龄前，需要看护。", AssignedVolunteerID: "vol_08"},
	}
}

func demoRequests() []workflow.Request {
	amount := func(v float64) *float64 { return &v }
	date := func(v string) *time.Time {
		d := clock.MustParseDate(v)
		return &d
	}

	return []workflow.Request{
		{Type: workflow.TypeFunding, Content: "购买绘画教材和颜料，用于周末的美术辅导活动。", Status: workflow.StatusPending, ApplicantID: "vol_02", Amount: amount(200)},
		{Type: workflow.TypeLeave, Content: "家中急事，需请假三天。", Status: workflow.StatusPending, ApplicantID: "leader_01", StartDate: date("2023-11-01"), EndDate: date("2023-11-03")},
		{Type: workflow.TypeReschedule, Content: "下周二无法参加，希望能调整到周三。", Status: workflow.StatusApproved, ApplicantID: "vol_02", ApproverID: "leader_01"},
		{Type: workflow.TypeFunding, Content: "为小兰购买一套数学辅导书。", Status: workflow.StatusPending, ApplicantID: "vol_04", Amount: amount(150)},
		{Type: workflow.TypeLeave, Content: "身体不适，申请休假一周。", Status: workflow.StatusPending, ApplicantID: "vol_07", StartDate: date("2023-11-10"), EndDate: date("2023-11-17")},
	}
}

type demoLog struct {
	beneficiary string
	volunteerID string
	content     string
}

func demoLogs() []demoLog {
	return []demoLog{
		{beneficiary: "小明", volunteerID: "vol_02", content: "今天带小明去公园写生，他画了一棵大树，心情看起来很不错。"},
		{beneficiary: "小兰", volunteerID: "vol_04", content: "辅导了小兰的期中考试错题，她对几何部分掌握得很快。"},
	}
}
