package service

import (
	"time"

	"github.com/proshopcms/internal/db"
	"github.com/proshopcms/internal/locale"
)

// 以下样例内容在数据库为空或 slug 找不到时展示，保证公开页面不会空白。
// 描述类文本按请求语言在印尼语与英语之间切换。

func sampleRecord(id uint) db.Record {
	return db.Record{ID: id}
}

func sampleProducts(language string) []db.Product {
	pick := func(en, id string) string { return locale.Pick(language, en, id) }
	return []db.Product{
		{
			Record:   sampleRecord(1),
			Name:     "VRV / VRF SYSTEM",
			Slug:     "vrv-system",
			Category: "Commercial Air Conditioning",
			ImageURL: "https://www.daikin.co.id/storage/product/1623136585-VRV_A.png",
			Description: pick(
				"Advanced central air conditioning with variable inverter technology for maximum efficiency in high-rise buildings.",
				"Sistem tata udara sentral tercanggih dengan teknologi inverter variabel untuk efisiensi maksimal pada gedung bertingkat.",
			),
			Features: []string{"VRT Technology", "BACnet Integration", "Auto-Refill"},
			DetailedFeatures: []db.ProductFeature{
				{Name: "VRT Technology", Desc: pick(
					"Variable Refrigerant Temperature delivers energy savings of up to 28%.",
					"Variable Refrigerant Temperature memastikan penghematan energi hingga 28%.",
				)},
				{Name: "BACnet Integration", Desc: pick(
					"Integrates with third-party building management systems.",
					"Dapat diintegrasikan dengan sistem manajemen gedung pihak ketiga.",
				)},
			},
			IdealApplications: []db.ProductApplication{
				{Icon: "Building2", Title: "High-Rise Office", Desc: pick(
					"Central system for the heat load of multi-storey buildings.",
					"Sistem sentral untuk beban panas gedung bertingkat.",
				)},
				{Icon: "Hospital", Title: "Healthcare", Desc: pick(
					"Hygienic cooling for sterile and surgical rooms.",
					"Hygienic cooling untuk ruang steril dan bedah.",
				)},
			},
		},
		{
			Record:   sampleRecord(2),
			Name:     "MODULAR CHILLER",
			Slug:     "modular-chiller",
			Category: "Industrial Cooling Solutions",
			ImageURL: "https://www.daikin.com.sg/wp-content/uploads/2021/05/Air-Cooled-Scroll-Chiller-UAA-UAY-B-Series.png",
			Description: pick(
				"High-capacity cooling for manufacturing plants and data centres with 24/7 operational reliability.",
				"Solusi pendinginan kapasitas besar untuk fasilitas manufaktur dan pusat data dengan keandalan operasional 24/7.",
			),
			Features: []string{"Modular Scalability", "Low Noise", "Rapid Cooling"},
		},
		{
			Record:   sampleRecord(3),
			Name:     "VRV HOME SERIES",
			Slug:     "vrv-home",
			Category: "Residential Air Conditioning",
			ImageURL: "https://www.daikin.co.id/storage/product/1623136625-VRV_H.png",
			Description: pick(
				"Five-star hotel comfort at home. One elegant central system replaces many outdoor units.",
				"Kenyamanan hotel bintang lima di hunian Anda. Menggantikan banyak outdoor unit dengan satu sistem sentral yang elegan.",
			),
			Features: []string{"Space Saving", "Quiet Mode", "Lifestyle Control"},
		},
		{
			Record:   sampleRecord(4),
			Name:     "RECLAIM AIR PURIFIER",
			Slug:     "air-purifier",
			Category: "Indoor Air Quality Solutions",
			ImageURL: "https://www.daikin.com.sg/wp-content/uploads/2021/03/MC55VMM-6-768x768.png",
			Description: pick(
				"Hospital-grade air filtration that removes 99.9% of viruses and fine particulates.",
				"Sistem filtrasi udara tingkat rumah sakit yang menghilangkan 99.9% virus dan partikulat halus.",
			),
			Features: []string{"HEPA Filter", "Streamer Technology", "Active Plasma"},
		},
		{
			Record:   sampleRecord(5),
			Name:     "INTELLIGENT TOUCH MANAGER",
			Slug:     "itm-control",
			Category: "Controls & Automation",
			ImageURL: "https://www.daikin.com.sg/wp-content/uploads/2021/03/DCM601A51.png",
			Description: pick(
				"Building management system with centralised control of every HVAC unit from one interface.",
				"Sistem manajemen gedung (BMS) yang memungkinkan kontrol terpusat seluruh unit HVAC dari satu antarmuka.",
			),
			Features: []string{"Cloud Access", "Energy Monitoring", "Schedule Logic"},
		},
	}
}

func samplePortfolios(language string) []db.Portfolio {
	pick := func(en, id string) string { return locale.Pick(language, en, id) }
	return []db.Portfolio{
		{
			Record:       sampleRecord(1),
			Title:        "PT. Logistik Nasional",
			Slug:         "pt-logistik-nasional",
			Category:     "INDUSTRIAL",
			Location:     "Jakarta",
			ProductsUsed: "VRV A Series, AHU Custom",
			ImageURL:     "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?auto=format&fit=crop&q=80&w=1200",
			Summary: pick(
				"Pharmaceutical warehouse temperature optimisation with precise humidity control.",
				"Optimalisasi suhu gudang farmasi dengan kontrol kelembaban presisi.",
			),
			Challenge: pick(
				"The building needed a constant 18°C under highly variable heat loads.",
				"Gedung membutuhkan suhu konstan 18°C dengan variasi beban panas tinggi.",
			),
			Solution: pick(
				"Daikin VRV A Series installation with BMS integration.",
				"Instalasi Daikin VRV A Series dengan integrasi BMS.",
			),
			Impact: pick("Electricity costs down 28%.", "Efisiensi biaya listrik turun 28%."),
		},
		{
			Record:       sampleRecord(2),
			Title:        "The Ritz-Carlton Residences",
			Slug:         "ritz-carlton-residences",
			Category:     "RESIDENTIAL",
			Location:     "Jakarta Selatan",
			ProductsUsed: "VRV Home Series, Ducting Invisible",
			ImageURL:     "https://images.unsplash.com/photo-1545324418-cc1a3fa10c00?auto=format&fit=crop&q=80&w=1200",
			Summary: pick(
				"Luxury air conditioning that stays out of sight (invisible luxury).",
				"Sistem tata udara mewah yang tidak terlihat (invisible luxury).",
			),
			Challenge: pick("Minimal outdoor unit footprint.", "Kebutuhan unit outdoor minimalis."),
			Solution:  pick("VRV Home Series with concealed ducting.", "VRV Home Series dengan ducting tersembunyi."),
			Impact:    pick("Maximum acoustic comfort (<25dB).", "Kenyamanan akustik maksimal (<25dB)."),
		},
		{
			Record:       sampleRecord(3),
			Title:        "Global Oncology Hospital",
			Slug:         "global-oncology-hospital",
			Category:     "HEALTHCARE",
			Location:     "Tangerang",
			ProductsUsed: "Hygienic VRV, HEPA Units",
			ImageURL:     "https://images.unsplash.com/photo-1519494026892-80bbd2d6fd0d?auto=format&fit=crop&q=80&w=1200",
			Summary: pick(
				"Operating theatre air standardisation with high-grade filtration.",
				"Standardisasi udara ruang operasi dengan teknologi filtrasi tingkat tinggi.",
			),
			Challenge: pick("Class 10,000 operating room certification.", "Sertifikasi ruang operasi kelas 10,000."),
			Solution: pick(
				"Dedicated HVAC system with a high air change rate.",
				"Sistem HVAC khusus dengan air change rate yang tinggi.",
			),
			Impact: pick(
				"Zero contamination reports in the first 12 months.",
				"Zero contamination report selama 12 bulan pertama.",
			),
		},
	}
}

func sampleAwards() []db.Award {
	return []db.Award{
		{Record: sampleRecord(1), Year: "2024", Name: "Million Dollar Award", Institution: "Daikin Indonesia"},
		{Record: sampleRecord(2), Year: "2023", Name: "Elite Dealer Recognition", Institution: "Daikin Global"},
		{Record: sampleRecord(3), Year: "2022", Name: "Best After-Sales Service", Institution: "Daikin Indonesia"},
	}
}

func sampleFAQs(language string) []db.FAQ {
	pick := func(en, id string) string { return locale.Pick(language, en, id) }
	return []db.FAQ{
		{
			Record:   sampleRecord(1),
			Order:    1,
			Question: pick("How are commercial and industrial projects handled?", "Bagaimana penanganan proyek skala komersial & industri?"),
			Answer: pick(
				"A dedicated engineering team covers heat-load calculation, system design and supervision of large installations.",
				"Kami memiliki tim engineer khusus untuk menangani heat-load calculation, desain sistem, hingga supervisi instalasi skala besar.",
			),
		},
		{
			Record:   sampleRecord(2),
			Order:    2,
			Question: pick("Are the Daikin products official and under warranty?", "Apakah produk Daikin resmi dan bergaransi?"),
			Answer: pick(
				"Yes. As an official Daikin Proshop every unit carries the full Daikin Indonesia warranty and genuine spare part support.",
				"Ya, sebagai Daikin Proshop resmi, semua unit kami memiliki garansi penuh dari Daikin Indonesia dan dukungan suku cadang asli.",
			),
		},
		{
			Record:   sampleRecord(3),
			Order:    3,
			Question: pick("Is technical consulting available?", "Apakah tersedia layanan konsultasi teknis?"),
			Answer: pick(
				"Free consulting from architectural planning through to selecting the most efficient units.",
				"Kami menyediakan konsultasi gratis mulai dari tahap perencanaan arsitektur hingga pemilihan unit yang paling efisien.",
			),
		},
		{
			Record:   sampleRecord(4),
			Order:    4,
			Question: pick("What about maintenance contracts?", "Bagaimana dengan kontrak pemeliharaan?"),
			Answer: pick(
				"A Preventive Maintenance Contract keeps your HVAC system at peak efficiency all year.",
				"Kami menawarkan Preventive Maintenance Contract untuk memastikan sistem HVAC Anda beroperasi pada efisiensi puncak sepanjang tahun.",
			),
		},
		{
			Record:   sampleRecord(5),
			Order:    5,
			Question: pick("Which regions do you serve?", "Cakupan wilayah proyek CSL?"),
			Answer: pick(
				"All of Indonesia, focused on Jabodetabek and the major cities of Java.",
				"Layanan kami mencakup seluruh Indonesia, dengan fokus utama pada Jabodetabek dan kota-kota besar di Pulau Jawa.",
			),
		},
		{
			Record:   sampleRecord(6),
			Order:    6,
			Question: pick("How long does installation take?", "Estimasi waktu instalasi?"),
			Answer: pick(
				"It depends on scale: one to two weeks for luxury residences, industrial work follows the construction timeline.",
				"Tergantung skala proyek. Untuk residensial mewah biasanya 1-2 minggu, sedangkan industrial disesuaikan dengan timeline konstruksi.",
			),
		},
	}
}

func sampleArticles(language string) []db.Article {
	pick := func(en, id string) string { return locale.Pick(language, en, id) }
	date := func(day int) time.Time { return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC) }
	return []db.Article{
		{
			Record:      sampleRecord(1),
			Title:       "Masa Depan Sistem VRV Industri",
			Slug:        "future-vrv",
			Excerpt:     pick("An in-depth look at energy savings of up to 40% in the latest VRV generation for tall buildings.", "Analisis mendalam tentang penghematan energi hingga 40% pada generasi terbaru unit VRV untuk gedung tinggi."),
			ImageURL:    "https://images.unsplash.com/photo-1581094794329-c8112a89af12?auto=format&fit=crop&q=80&w=800",
			Category:    "Teknologi",
			Author:      "Ahmad Sudirman",
			PublishedAt: date(20),
			ReadTime:    "5 min",
		},
		{
			Record:      sampleRecord(2),
			Title:       "Standar Udara Higienis di Fasilitas Medis",
			Slug:        "hygienic-air-standards",
			Excerpt:     pick("Why conventional HVAC is not enough for operating and isolation rooms.", "Mengapa sistem HVAC konvensional tidak cukup untuk ruang operasi dan isolasi?"),
			ImageURL:    "https://images.unsplash.com/photo-1516549655169-df83a0774514?auto=format&fit=crop&q=80&w=800",
			Category:    "Kesehatan",
			Author:      "Dr. Linda W.",
			PublishedAt: date(18),
			ReadTime:    "7 min",
		},
		{
			Record:      sampleRecord(3),
			Title:       "Pentingnya Heat Load Calculation",
			Slug:        "heat-load-importance",
			Excerpt:     pick("Heat load miscalculations often waste up to 30% in electricity costs.", "Kesalahan perhitungan beban panas seringkali menyebabkan pemborosan biaya listrik hingga 30%."),
			ImageURL:    "https://images.unsplash.com/photo-1504384308090-c894fdcc538d?auto=format&fit=crop&q=80&w=800",
			Category:    "Engineering",
			Author:      "Team CSL",
			PublishedAt: date(15),
			ReadTime:    "4 min",
		},
		{
			Record:      sampleRecord(4),
			Title:       "Automasi Gedung dengan Daikin ITM",
			Slug:        "itm-automation",
			Excerpt:     pick("Controlling thousands of AC units from a single touch screen in your building control room.", "Cara mengontrol ribuan unit AC dari satu layar sentuh di pusat kendali gedung Anda."),
			ImageURL:    "https://images.unsplash.com/photo-1558002038-1055907df827?auto=format&fit=crop&q=80&w=800",
			Category:    "Automation",
			Author:      "Rifki H.",
			PublishedAt: date(12),
			ReadTime:    "6 min",
		},
		{
			Record:      sampleRecord(5),
			Title:       "Inovasi Indoor Air Quality 2025",
			Slug:        "iaq-innovation-2025",
			Excerpt:     pick("Daikin Streamer technology that effectively deactivates new virus variants.", "Teknologi Streamer Daikin yang mampu menonaktifkan varian virus baru secara efektif."),
			ImageURL:    "https://images.unsplash.com/photo-1532187875302-1ee665c542ee?auto=format&fit=crop&q=80&w=800",
			Category:    "Teknologi",
			Author:      "Engineering Dept",
			PublishedAt: date(10),
			ReadTime:    "5 min",
		},
	}
}

func sampleTestimonials() []db.Testimonial {
	return []db.Testimonial{
		{
			Record:   sampleRecord(1),
			Name:     "BUDI SANTOSO",
			Role:     "Chief Engineer",
			Company:  "Sudirman Tower",
			Content:  "Sistem yang dipasang sangat stabil dan efisiensi listriknya terbukti. Pelayanan after-sales mereka benar-benar bisa diandalkan kapan saja.",
			ImageURL: "https://i.pravatar.cc/150?u=budi",
		},
		{
			Record:   sampleRecord(2),
			Name:     "LINDA KUSUMA",
			Role:     "Property Manager",
			Company:  "Green Residencies",
			Content:  "Kualitas udara di unit hunian kami meningkat drastis. Tim CSL sangat profesional dalam menangani detail teknis yang rumit.",
			ImageURL: "https://i.pravatar.cc/150?u=linda",
		},
		{
			Record:   sampleRecord(3),
			Name:     "HENDRA WIJAYA",
			Role:     "Project Director",
			Company:  "Global Medika Hospital",
			Content:  "Untuk kebutuhan udara higienis rumah sakit, CSL adalah mitra terbaik. Perhitungan heat load mereka sangat presisi dan akurat.",
			ImageURL: "https://i.pravatar.cc/150?u=hendra",
		},
		{
			Record:   sampleRecord(4),
			Name:     "ANTONI TAN",
			Role:     "Owner",
			Company:  "Tan & Co Office",
			Content:  "Instalasi rapi dan tepat waktu. Sistem ITM yang direkomendasikan sangat membantu saya mengontrol AC gedung dari jarak jauh.",
			ImageURL: "https://i.pravatar.cc/150?u=antoni",
		},
	}
}
