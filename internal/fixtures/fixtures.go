// Package fixtures holds the fixed datasets served when the upstream API is
// not used or not reachable. Every function returns a fresh copy.
package fixtures

import (
	"time"

	"regadmin/dashboard/internal/model"
)

func day(month time.Month, d, hour int) time.Time {
	return time.Date(2024, month, d, hour, 0, 0, 0, time.UTC)
}

func AdminUser() model.User {
	return model.User{
		ID:          "usr_admin_001",
		Email:       "admin@example.local",
		DisplayName: "Station Administrator",
		Role:        "admin",
		StationID:   "STN-001",
	}
}

func StationJobs() []model.StationJob {
	return []model.StationJob{
		{ID: "job-001", ApplicantName: "Adaeze Okafor", PlateNumber: "ABC-123-XY", RegistrationType: "new", VehicleMake: "Toyota", CreatedAt: day(time.January, 8, 9)},
		{ID: "job-002", ApplicantName: "Chinedu Eze", PlateNumber: "KJA-456-LM", RegistrationType: "renewal", VehicleMake: "Honda", CreatedAt: day(time.January, 12, 11)},
		{ID: "job-003", ApplicantName: "Fatima Bello", PlateNumber: "ABJ-789-QR", RegistrationType: "New", VehicleMake: "Hyundai", CreatedAt: day(time.February, 3, 14)},
		{ID: "job-004", ApplicantName: "Tunde Adeyemi", PlateNumber: "LSD-321-PK", RegistrationType: "transfer", VehicleMake: "Kia", CreatedAt: day(time.February, 17, 10)},
		{ID: "job-005", ApplicantName: "Ngozi Umeh", PlateNumber: "ENU-654-TT", RegistrationType: "renewal", VehicleMake: "Ford", CreatedAt: day(time.March, 2, 16)},
	}
}

func VehicleRegistrations() []model.VehicleRegistration {
	regs := []struct {
		id, name, email, gender, regType, status, plate string
		make, vmodel, color                             string
		year                                            int
		created                                         time.Time
	}{
		{"reg-001", "Adaeze Okafor", "adaeze@example.com", "female", "new", "approved", "ABC-123-XY", "Toyota", "Corolla", "Silver", 2019, day(time.January, 5, 9)},
		{"reg-002", "Chinedu Eze", "chinedu@example.com", "male", "renewal", "approved", "KJA-456-LM", "Honda", "Accord", "Black", 2017, day(time.January, 11, 10)},
		{"reg-003", "Fatima Bello", "fatima@example.com", "female", "New", "pending", "ABJ-789-QR", "Hyundai", "Elantra", "White", 2021, day(time.February, 2, 12)},
		{"reg-004", "Tunde Adeyemi", "tunde@example.com", "male", "transfer", "approved", "LSD-321-PK", "Kia", "Rio", "Red", 2016, day(time.February, 15, 15)},
		{"reg-005", "Ngozi Umeh", "ngozi@example.com", "female", "renewal", "rejected", "ENU-654-TT", "Ford", "Focus", "Blue", 2015, day(time.March, 1, 8)},
		{"reg-006", "Ibrahim Musa", "ibrahim@example.com", "male", "NEW", "approved", "KAN-987-WE", "Nissan", "Altima", "Grey", 2020, day(time.March, 9, 13)},
		{"reg-007", "Kemi Johnson", "kemi@example.com", "female", "renewal", "pending", "OYO-147-HJ", "Mercedes-Benz", "C300", "Black", 2018, day(time.March, 21, 9)},
		{"reg-008", "Emeka Obi", "emeka@example.com", "male", "new", "approved", "RIV-258-GB", "Lexus", "RX350", "White", 2022, day(time.April, 4, 17)},
	}

	out := make([]model.VehicleRegistration, 0, len(regs))
	for _, r := range regs {
		out = append(out, model.VehicleRegistration{
			ID: r.id,
			Owner: model.Owner{
				FullName: r.name,
				Email:    r.email,
				Gender:   r.gender,
				Phone:    "+234800000" + r.id[len(r.id)-3:],
				State:    "Lagos",
			},
			Vehicle: model.Vehicle{
				Make:          r.make,
				Model:         r.vmodel,
				Year:          r.year,
				Color:         r.color,
				Category:      "private",
				ChassisNumber: "CHS" + r.id[len(r.id)-3:] + "X90",
				EngineNumber:  "ENG" + r.id[len(r.id)-3:] + "K21",
			},
			RegistrationType: r.regType,
			Status:           r.status,
			IssuedBy:         "usr_admin_001",
			PlateNumber:      r.plate,
			CreatedAt:        r.created,
			UpdatedAt:        r.created.Add(48 * time.Hour),
		})
	}
	return out
}

func LearnerPermits() []model.LearnerPermit {
	return []model.LearnerPermit{
		{ID: "lp-001", PermitNumber: "LP-2024-0001", ApplicantName: "Bola Ahmed", Class: "B", Status: "active", IssuedAt: day(time.January, 10, 9), ExpiresAt: day(time.July, 10, 9)},
		{ID: "lp-002", PermitNumber: "LP-2024-0002", ApplicantName: "Grace Nwosu", Class: "A", Status: "expired", IssuedAt: day(time.January, 2, 9), ExpiresAt: day(time.April, 2, 9)},
		{ID: "lp-003", PermitNumber: "LP-2024-0003", ApplicantName: "Yusuf Lawal", Class: "B", Status: "pending", IssuedAt: day(time.March, 14, 9), ExpiresAt: day(time.September, 14, 9)},
	}
}

func Plates() []model.Plate {
	assigned := day(time.January, 7, 9)
	transferred := day(time.February, 16, 9)
	return []model.Plate{
		{Number: "ABC-123-XY", Type: "private", Status: "assigned", RegistrationID: "reg-001", AssignedAt: &assigned},
		{Number: "LSD-321-PK", Type: "private", Status: "assigned", RegistrationID: "reg-004", AssignedAt: &transferred},
		{Number: "GOV-001-FG", Type: "government", Status: "available"},
		{Number: "COM-552-TR", Type: "commercial", Status: "available"},
		{Number: "ENU-654-TT", Type: "private", Status: "revoked", RegistrationID: "reg-005"},
	}
}
