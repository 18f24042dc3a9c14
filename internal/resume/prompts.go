package resume

const extractionPrompt = `You are an expert resume parser. Extract detailed
structured data from the resume: personal information, contact details, work
experience, education history, skills, certifications, projects and
achievements. Respond with a single JSON object keyed by section.`

const skillExtractionPrompt = `Analyze the resume and extract technical
skills, soft skills, domain expertise and certifications. Respond with a JSON
object {"skills": [...]} where each entry has fields name, category
(technical/soft/domain), proficiency (1-5), years_experience, context and
relevance_score (0-1).`

const enhancementPrompt = `Analyze the resume and provide specific
improvements for content (achievement quantification, action verbs, clarity),
ATS optimization (keywords, format, headings), career narrative (progression,
impact, leadership) and industry alignment (terminology, trends,
positioning). Respond with a JSON object
{"content_suggestions": {"<section>": ["..."]},
 "industry_alignment": {...}, "career_narrative": {...}}.`

const atsPrompt = `You are an ATS system. Score this resume's ATS
optimization from 0 to 100 and explain why. Respond with a JSON object
{"score": <int>, "feedback": ["..."]}.`
