package hitbtc

import "github.com/shopspring/decimal"

// Trading fees used when a symbol does not report its own liquidity rates.
var (
	defaultMaker = decimal.RequireFromString("-0.0001")
	defaultTaker = decimal.RequireFromString("0.001")
)

// withdrawFees is the flat withdrawal fee per currency id.
var withdrawFees = map[string]string{
	"BTC":     "0.0009",
	"ETH":     "0.00958",
	"BCH":     "0.0018",
	"USDT":    "5",
	"BTG":     "0.0005",
	"LTC":     "0.003",
	"ZEC":     "0.0001",
	"XMR":     "0.09",
	"1ST":     "0.84",
	"ADX":     "5.7",
	"AE":      "6.7",
	"AEON":    "0.01006",
	"AIR":     "565",
	"AMP":     "9",
	"ANT":     "6.7",
	"ARDR":    "2",
	"ARN":     "18.5",
	"ART":     "26",
	"ATB":     "0.0004",
	"ATL":     "27",
	"ATM":     "504",
	"ATS":     "860",
	"AVT":     "1.9",
	"BAS":     "113",
	"BCN":     "0.1",
	"BET":     "124",
	"BKB":     "46",
	"BMC":     "32",
	"BMT":     "100",
	"BNT":     "2.57",
	"BQX":     "4.7",
	"BTM":     "40",
	"BTX":     "0.04",
	"BUS":     "0.004",
	"CCT":     "115",
	"CDT":     "100",
	"CDX":     "30",
	"CFI":     "61",
	"CLD":     "0.88",
	"CND":     "574",
	"CNX":     "0.04",
	"COSS":    "65",
	"CSNO":    "16",
	"CTR":     "15",
	"CTX":     "146",
	"CVC":     "8.46",
	"DBIX":    "0.0168",
	"DCN":     "120000",
	"DCT":     "0.02",
	"DDF":     "342",
	"DENT":    "6240",
	"DGB":     "0.4",
	"DGD":     "0.01",
	"DICE":    "0.32",
	"DLT":     "0.26",
	"DNT":     "0.21",
	"DOGE":    "2",
	"DOV":     "34",
	"DRPU":    "24",
	"DRT":     "240",
	"DSH":     "0.017",
	"EBET":    "84",
	"EBTC":    "20",
	"EBTCOLD": "6.6",
	"ECAT":    "14",
	"EDG":     "2",
	"EDO":     "2.9",
	"ELE":     "0.00172",
	"ELM":     "0.004",
	"EMC":     "0.03",
	"EMGO":    "14",
	"ENJ":     "163",
	"EOS":     "1.5",
	"ERO":     "34",
	"ETBS":    "15",
	"ETC":     "0.002",
	"ETP":     "0.004",
	"EVX":     "5.4",
	"EXN":     "456",
	"FRD":     "65",
	"FUEL":    "123.00105",
	"FUN":     "202.9598309",
	"FYN":     "1.849",
	"FYP":     "66.13",
	"GNO":     "0.0034",
	"GUP":     "4",
	"GVT":     "1.2",
	"HAC":     "144",
	"HDG":     "7",
	"HGT":     "1082",
	"HPC":     "0.4",
	"HVN":     "120",
	"ICN":     "0.55",
	"ICO":     "34",
	"ICOS":    "0.35",
	"IND":     "76",
	"INDI":    "5913",
	"ITS":     "15.0012",
	"IXT":     "11",
	"KBR":     "143",
	"KICK":    "112",
	"LA":      "41",
	"LAT":     "1.44",
	"LIFE":    "13000",
	"LRC":     "27",
	"LSK":     "0.3",
	"LUN":     "0.34",
	"MAID":    "5",
	"MANA":    "143",
	"MCAP":    "5.44",
	"MIPS":    "43",
	"MNE":     "1.33",
	"MSP":     "121",
	"MTH":     "92",
	"MYB":     "3.9",
	"NDC":     "165",
	"NEBL":    "0.04",
	"NET":     "3.96",
	"NTO":     "998",
	"NXC":     "13.39",
	"NXT":     "3",
	"OAX":     "15",
	"ODN":     "0.004",
	"OMG":     "2",
	"OPT":     "335",
	"ORME":    "2.8",
	"OTN":     "0.57",
	"PAY":     "3.1",
	"PIX":     "96",
	"PLBT":    "0.33",
	"PLR":     "114",
	"PLU":     "0.87",
	"POE":     "784",
	"POLL":    "3.5",
	"PPT":     "2",
	"PRE":     "32",
	"PRG":     "39",
	"PRO":     "41",
	"PRS":     "60",
	"PTOY":    "0.5",
	"QAU":     "63",
	"QCN":     "0.03",
	"QTUM":    "0.04",
	"QVT":     "64",
	"REP":     "0.02",
	"RKC":     "15",
	"RVT":     "14",
	"SAN":     "2.24",
	"SBD":     "0.03",
	"SCL":     "2.6",
	"SISA":    "1640",
	"SKIN":    "407",
	"SMART":   "0.4",
	"SMS":     "0.0375",
	"SNC":     "36",
	"SNGLS":   "4",
	"SNM":     "48",
	"SNT":     "233",
	"STEEM":   "0.01",
	"STRAT":   "0.01",
	"STU":     "14",
	"STX":     "11",
	"SUB":     "17",
	"SUR":     "3",
	"SWT":     "0.51",
	"TAAS":    "0.91",
	"TBT":     "2.37",
	"TFL":     "15",
	"TIME":    "0.03",
	"TIX":     "7.1",
	"TKN":     "1",
	"TKR":     "84",
	"TNT":     "90",
	"TRST":    "1.6",
	"TRX":     "1395",
	"UET":     "480",
	"UGT":     "15",
	"VEN":     "14",
	"VERI":    "0.037",
	"VIB":     "50",
	"VIBE":    "145",
	"VOISE":   "618",
	"WEALTH":  "0.0168",
	"WINGS":   "2.4",
	"WTC":     "0.75",
	"XAUR":    "3.23",
	"XDN":     "0.01",
	"XEM":     "15",
	"XUC":     "0.9",
	"YOYOW":   "140",
	"ZAP":     "24",
	"ZRX":     "23",
	"ZSC":     "191",
}

func withdrawFee(currencyID string) decimal.NullDecimal {
	fee, ok := withdrawFees[currencyID]
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.RequireFromString(fee))
}
